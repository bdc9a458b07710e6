package pixel

import (
	"image"
	"image/color"
)

// FrameBuffer is a 1-bit per pixel monochrome image organized in lines of
// vertical bytes, the native RAM layout of page addressed controllers.
//
// Each line (page) covers 8 rows of pixels and holds one byte per column. Bit b
// of the byte in column x of line l is the pixel at (x, l*8+b).
type FrameBuffer struct {
	// Rect is the image bounding box, Min is always (0, 0).
	Rect image.Rectangle

	// Pix holds the lines, one after another.
	Pix []byte

	// Stride is the number of bytes per line.
	Stride int
}

// NewFrameBuffer allocates a blank frame buffer with lines of width bytes.
func NewFrameBuffer(width, lines int) *FrameBuffer {
	if width < 0 {
		width = 0
	}
	if lines < 0 {
		lines = 0
	}
	return &FrameBuffer{
		Rect:   image.Rect(0, 0, width, lines*8),
		Pix:    make([]byte, width*lines),
		Stride: width,
	}
}

// Width is the number of bytes (columns) per line.
func (p *FrameBuffer) Width() int {
	return p.Stride
}

// LineCount is the number of lines.
func (p *FrameBuffer) LineCount() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Line returns line y, which can be modified in place. It returns nil if y is
// not a valid line.
func (p *FrameBuffer) Line(y int) []byte {
	if y < 0 || y >= p.LineCount() {
		return nil
	}
	off := y * p.Stride
	return p.Pix[off : off+p.Stride : off+p.Stride]
}

// ClearLine fills line y with value. Invalid lines are ignored.
func (p *FrameBuffer) ClearLine(y int, value byte) {
	line := p.Line(y)
	for i := range line {
		line[i] = value
	}
}

// ClearBuffer fills all lines with value.
func (p *FrameBuffer) ClearBuffer(value byte) {
	for y, n := 0, p.LineCount(); y < n; y++ {
		p.ClearLine(y, value)
	}
}

// Clear turns all pixels off.
func (p *FrameBuffer) Clear() {
	p.ClearBuffer(0x00)
}

// Fill the image with a single color.
func (p *FrameBuffer) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	p.ClearBuffer(value)
}

func (p *FrameBuffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *FrameBuffer) ColorModel() color.Model {
	return MonoModel
}

func (p *FrameBuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{
		On: p.Pix[y>>3*p.Stride+x]&(1<<uint(y&7)) != 0,
	}
}

func (p *FrameBuffer) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

// SetBit sets a single pixel, leaving the other 7 pixels sharing its byte
// untouched. Coordinates outside of the image are ignored.
func (p *FrameBuffer) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos   = y>>3*p.Stride + x
		shift = uint(y & 7)
		bit   byte
	)
	if on {
		bit = 1
	}
	p.Pix[pos] = p.Pix[pos]&^(1<<shift) | bit<<shift
}
