package draw

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultTinyFont is used by TinyText if no font is given.
var DefaultTinyFont tinyfont.Fonter = &proggy.TinySZ8pt7b

type tinyDisplay struct {
	dst Image
}

// Tiny adapts dst to a TinyGo display, for use with the TinyGo drawing and
// font libraries. If dst has a Refresh method, Display calls it.
func Tiny(dst Image) drivers.Displayer {
	return tinyDisplay{dst: dst}
}

func (d tinyDisplay) Size() (x, y int16) {
	r := d.dst.Bounds()
	return int16(r.Max.X), int16(r.Max.Y)
}

func (d tinyDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.dst.Set(int(x), int(y), c)
}

func (d tinyDisplay) Display() error {
	if r, ok := d.dst.(interface{ Refresh() error }); ok {
		return r.Refresh()
	}
	return nil
}

// TinyText draws s in a TinyGo font with the baseline starting at pt. A nil f
// uses DefaultTinyFont.
func TinyText(dst Image, pt image.Point, s string, f tinyfont.Fonter, c color.Color) {
	if f == nil {
		f = DefaultTinyFont
	}
	tinyfont.WriteLine(Tiny(dst), f, int16(pt.X), int16(pt.Y), s, toRGBA(c))
}

// TinyTextWidth is the width of s in pixels. A nil f uses DefaultTinyFont.
func TinyTextWidth(s string, f tinyfont.Fonter) int {
	if f == nil {
		f = DefaultTinyFont
	}
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
