package draw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is used by Text if no face is given.
var DefaultFace font.Face = basicfont.Face7x13

// Text draws s with the baseline starting at pt and returns the advance in
// pixels. A nil face uses DefaultFace.
func Text(dst Image, pt image.Point, s string, face font.Face, c color.Color) int {
	if face == nil {
		face = DefaultFace
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y),
	}
	d.DrawString(s)
	return (d.Dot.X - fixed.I(pt.X)).Ceil()
}

// TextWidth is the advance of s in pixels. A nil face uses DefaultFace.
func TextWidth(s string, face font.Face) int {
	if face == nil {
		face = DefaultFace
	}
	return font.MeasureString(face, s).Ceil()
}

// TrueType renders a TrueType font at a fixed size.
type TrueType struct {
	font *truetype.Font
	size float64
	face font.Face
}

// NewTrueType parses a TrueType font for rendering at size points (and
// pixels, at 72 DPI). A nil ttf uses the Go Mono font.
func NewTrueType(ttf []byte, size float64) (*TrueType, error) {
	if ttf == nil {
		ttf = gomono.TTF
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("draw: error parsing TrueType font: %w", err)
	}
	return &TrueType{
		font: f,
		size: size,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// Face can be used with Text and TextWidth.
func (t *TrueType) Face() font.Face {
	return t.face
}

// DrawString draws s with the baseline starting at pt and returns the advance
// in pixels.
func (t *TrueType) DrawString(dst Image, pt image.Point, s string, c color.Color) (int, error) {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(t.font)
	ctx.SetFontSize(t.size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))

	dot, err := ctx.DrawString(s, freetype.Pt(pt.X, pt.Y))
	if err != nil {
		return 0, err
	}
	return (dot.X - fixed.I(pt.X)).Ceil(), nil
}
