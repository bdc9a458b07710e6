package command

import (
	"bytes"
	"testing"
)

func TestPosition(t *testing.T) {
	if v, want := Position(13, 7), [3]byte{0x0D, 0x10, 0xB7}; v != want {
		t.Fatalf("expected %#02x, got %#02x", want, v)
	}

	for column := 0; column < 96; column++ {
		for page := 0; page < 16; page++ {
			want := [3]byte{
				byte(column & 0xF),
				byte(0x10 | (column>>4)&0x7),
				byte(0xB0 | page&0xF),
			}
			if v := Position(uint8(column), uint8(page)); v != want {
				t.Fatalf("position (%d,%d): expected %#02x, got %#02x", column, page, want, v)
			}
		}
	}
}

func TestMasking(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(uint8) byte
		width uint8
	}{
		{"contrast", Contrast, 0x1F},
		{"start line", StartLine, 0x3F},
		{"page", Page, 0x0F},
		{"column low", ColumnLow, 0x0F},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			for v := 0; v < 256; v++ {
				if got, want := test.fn(uint8(v)), test.fn(uint8(v)&test.width); got != want {
					it.Fatalf("%s(%d): expected %#02x, got %#02x", test.name, v, want, got)
				}
			}
		})
	}

	if Contrast(40) != Contrast(8) {
		t.Errorf("expected contrast 40 to be masked to 8, got %#02x", Contrast(40))
	}
	if v := ColumnHigh(0xFF); v != 0x17 {
		t.Errorf("expected column high of 0xFF to be 0x17, got %#02x", v)
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(bool) byte
		on, off byte
	}{
		{"power", Power, 0x2F, 0x28},
		{"display", Display, 0xAF, 0xAE},
		{"invert", Invert, 0xA7, 0xA6},
		{"test", Test, 0xA5, 0xA4},
		{"horizontal flip", HorizontalFlip, 0xA1, 0xA0},
		{"vertical flip", VerticalFlip, 0xC8, 0xC0},
	}
	for _, test := range tests {
		if v := test.fn(true); v != test.on {
			t.Errorf("%s on: expected %#02x, got %#02x", test.name, test.on, v)
		}
		if v := test.fn(false); v != test.off {
			t.Errorf("%s off: expected %#02x, got %#02x", test.name, test.off, v)
		}
	}
	if Reset != 0xE2 {
		t.Errorf("expected reset to be 0xE2, got %#02x", Reset)
	}
}

func TestInitSequence(t *testing.T) {
	want := []byte{0x2F, 0x9E, 0xA4, 0xA0, 0xC0, 0xA6, 0xAF, 0x00, 0x10, 0xB0}
	if v := InitSequence(); !bytes.Equal(v, want) {
		t.Fatalf("expected %#02x, got %#02x", want, v)
	}

	// Callers may modify the returned slice.
	InitSequence()[0] = 0
	if v := InitSequence(); v[0] != PowerOn {
		t.Fatalf("expected a fresh sequence, got %#02x", v)
	}
}
