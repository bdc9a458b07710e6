package pixel

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"
)

var _ draw.Image = (*FrameBuffer)(nil)

func TestFrameBuffer(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(8, 2),
		image.Pt(96, 9),
		image.Pt(128, 8),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			p := NewFrameBuffer(test.X, test.Y)

			if v, want := p.Bounds().Size(), image.Pt(test.X, test.Y*8); !v.Eq(want) {
				it.Errorf("expected image size %s, got %s", want, v)
			}
			if v := p.Width(); v != test.X {
				it.Errorf("expected width %d, got %d", test.X, v)
			}
			if test.X > 0 {
				if v := p.LineCount(); v != test.Y {
					it.Errorf("expected %d lines, got %d", test.Y, v)
				}
			}
			if v := len(p.Pix); v != test.X*test.Y {
				it.Errorf("expected %d bytes, got %d", test.X*test.Y, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				r := p.Bounds()
				for y := r.Min.Y; y < r.Max.Y; y++ {
					for x := r.Min.X; x < r.Max.X; x++ {
						c := testRandomColor()
						p.Set(x, y, c)
						if v, want := p.At(x, y), MonoModel.Convert(c); v != want {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, v, want, c)
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				p.Clear()
				r := p.Bounds()
				for y := -r.Dy(); y < r.Dy()*2; y++ {
					for x := -r.Dx(); x < r.Dx()*2; x++ {
						if (image.Point{X: x, Y: y}).In(r) {
							continue
						}
						p.Set(x, y, On)
						if v := p.At(x, y); v != color.Transparent {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
						}
					}
				}
				if i := bytes.IndexFunc(p.Pix, func(r rune) bool { return r != 0 }); len(p.Pix) > 0 && i != -1 {
					itt.Fatalf("out of bounds write changed byte %d", i)
				}
			})
		})
	}
}

func TestFrameBufferLine(t *testing.T) {
	p := NewFrameBuffer(96, 9)

	for y := 0; y < 9; y++ {
		if v := len(p.Line(y)); v != 96 {
			t.Errorf("line %d: expected 96 bytes, got %d", y, v)
		}
	}
	for _, y := range []int{-1, 9, 10, 1 << 20} {
		if v := p.Line(y); v != nil {
			t.Errorf("line %d: expected nil, got %d bytes", y, len(v))
		}
	}

	p.Line(3)[5] = 0xAA
	if v := p.Pix[3*96+5]; v != 0xAA {
		t.Errorf("expected line to alias the buffer, got %#02x", v)
	}

	// Appending to a line must never spill into the next one.
	_ = append(p.Line(0), 0xFF)
	if v := p.Pix[96]; v != 0x00 {
		t.Errorf("expected line 1 to be untouched, got %#02x", v)
	}
}

func TestFrameBufferClear(t *testing.T) {
	p := NewFrameBuffer(96, 9)

	p.ClearBuffer(0x5A)
	for y := 0; y < p.LineCount(); y++ {
		if v := p.Line(y); !bytes.Equal(v, bytes.Repeat([]byte{0x5A}, 96)) {
			t.Fatalf("line %d: expected all 0x5A, got %#02x", y, v)
		}
	}

	p.ClearLine(0, 0xC3)
	if v := p.Line(0); !bytes.Equal(v, bytes.Repeat([]byte{0xC3}, 96)) {
		t.Fatalf("line 0: expected all 0xC3, got %#02x", v)
	}
	for y := 1; y < p.LineCount(); y++ {
		if v := p.Line(y); !bytes.Equal(v, bytes.Repeat([]byte{0x5A}, 96)) {
			t.Fatalf("line %d: expected to be untouched, got %#02x", y, v)
		}
	}

	// Invalid lines are ignored.
	p.ClearLine(-1, 0xFF)
	p.ClearLine(9, 0xFF)

	p.Fill(color.White)
	if v := p.Line(8); !bytes.Equal(v, bytes.Repeat([]byte{0xFF}, 96)) {
		t.Fatalf("expected fill to set all pixels, got %#02x", v)
	}
	p.Clear()
	if v := p.Line(8); !bytes.Equal(v, make([]byte, 96)) {
		t.Fatalf("expected clear to reset all pixels, got %#02x", v)
	}
}

func TestFrameBufferSetBit(t *testing.T) {
	p := NewFrameBuffer(96, 9)

	for y := 0; y < 72; y++ {
		for _, initial := range []byte{0x00, 0xFF, 0xA5} {
			x := y % 96
			p.Line(y / 8)[x] = initial

			p.SetBit(x, y, true)
			if v, want := p.Line(y / 8)[x], initial|1<<(y%8); v != want {
				t.Fatalf("set (%d,%d) on %#02x: expected %#02x, got %#02x", x, y, initial, want, v)
			}
			p.SetBit(x, y, false)
			if v, want := p.Line(y / 8)[x], initial&^(1<<(y%8)); v != want {
				t.Fatalf("clear (%d,%d) on %#02x: expected %#02x, got %#02x", x, y, initial, want, v)
			}
		}
	}

	p.Clear()
	p.Set(13, 21, On)
	if v := p.Line(2)[13]; v != 0x20 {
		t.Fatalf("expected pixel (13,21) to be bit 5 of line 2, got %#02x", v)
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
