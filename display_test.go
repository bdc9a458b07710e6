package hx1230

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/hx1230/hx1230test"
	"github.com/BeatGlow/hx1230/pixel"
)

var _ display.Drawer = (*Display)(nil)

func testDisplay(t *testing.T, config *Config) (*Display, *hx1230test.Panel) {
	t.Helper()
	panel := hx1230test.NewPanel(Width, Lines)
	if config == nil {
		config = new(Config)
	}
	config.Delay = DelayFunc(func(time.Duration) {})
	d, err := Open(NewConn(panel, panel), config)
	if err != nil {
		t.Fatal(err)
	}
	if err = panel.Err(); err != nil {
		t.Fatal(err)
	}
	return d, panel
}

func TestOpen(t *testing.T) {
	var (
		reset     = &gpiotest.Pin{N: "RST", Num: 25}
		backlight = &gpiotest.Pin{N: "BL", Num: 19}
	)
	d, panel := testDisplay(t, &Config{
		Rotation:  Rotate180,
		Contrast:  12,
		Reset:     reset,
		Backlight: backlight,
	})

	if v := d.Bounds(); !v.Eq(image.Rect(0, 0, 96, 72)) {
		t.Errorf("expected bounds 96x72, got %s", v)
	}
	if v := d.String(); v != "HX1230 96x72" {
		t.Errorf("unexpected name %q", v)
	}
	if reset.L != gpio.High {
		t.Errorf("expected reset to be released")
	}
	if backlight.L != gpio.High {
		t.Errorf("expected backlight to be on")
	}

	s := panel.State()
	if !s.Power || !s.On || s.Contrast != 12 || !s.HorizontalFlip || !s.VerticalFlip {
		t.Errorf("unexpected state after open: %+v", s)
	}
	if d.Contrast() != 12 || d.Rotation() != Rotate180 {
		t.Errorf("expected contrast 12 at 180°, got %d at %s", d.Contrast(), d.Rotation())
	}
	if v := panel.RAM().Pix; !bytes.Equal(v, make([]byte, Width*Lines)) {
		t.Errorf("expected blank display RAM")
	}
}

func TestOpenErrors(t *testing.T) {
	panel := hx1230test.NewPanel(Width, Lines)
	for _, rotation := range []Rotation{Rotate90, Rotate270} {
		if _, err := Open(NewConn(panel, panel), &Config{Rotation: rotation}); err != ErrRotation {
			t.Errorf("rotation %s: expected %v, got %v", rotation, ErrRotation, err)
		}
	}
	if _, err := Open(NewConn(panel, panel), &Config{Width: 128}); err == nil {
		t.Errorf("expected error for oversized display")
	}
	if n := panel.Writes(); n != 0 {
		t.Errorf("expected no bus activity, got %d writes", n)
	}

	panel.FailAfter(0, nil)
	if _, err := Open(NewConn(panel, panel), &Config{Delay: DelayFunc(func(time.Duration) {})}); err != hx1230test.ErrInjected {
		t.Errorf("expected %v, got %v", hx1230test.ErrInjected, err)
	}
}

func TestDisplayRefresh(t *testing.T) {
	d, panel := testDisplay(t, nil)

	d.Set(0, 0, pixel.On)
	d.Set(95, 71, color.White)
	d.Set(96, 0, pixel.On)
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}

	ram := panel.RAM()
	if v := ram.Line(0)[0]; v != 0x01 {
		t.Errorf("expected pixel (0,0), got %#02x", v)
	}
	if v := ram.Line(8)[95]; v != 0x80 {
		t.Errorf("expected pixel (95,71), got %#02x", v)
	}
	if !bytes.Equal(ram.Pix, d.Buffer().Pix) {
		t.Errorf("expected display RAM to match the frame buffer")
	}

	d.Clear()
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	if v := panel.RAM().Pix; !bytes.Equal(v, make([]byte, Width*Lines)) {
		t.Errorf("expected blank display RAM after clear")
	}
}

func TestDisplayDraw(t *testing.T) {
	d, panel := testDisplay(t, nil)

	src := image.NewUniform(color.White)
	if err := d.Draw(image.Rect(8, 8, 16, 16), src, image.Point{}); err != nil {
		t.Fatal(err)
	}

	ram := panel.RAM()
	for x := 0; x < Width; x++ {
		want := byte(0)
		if x >= 8 && x < 16 {
			want = 0xFF
		}
		if v := ram.Line(1)[x]; v != want {
			t.Fatalf("column %d: expected %#02x, got %#02x", x, want, v)
		}
	}
	if v := d.At(9, 9); v != pixel.On {
		t.Errorf("expected pixel (9,9) to be on, got %v", v)
	}

	// Drawing replaces pixels, a transparent source turns them off.
	if err := d.Draw(image.Rect(8, 8, 12, 16), image.Transparent, image.Point{}); err != nil {
		t.Fatal(err)
	}
	line := panel.RAM().Line(1)
	for x := 8; x < 16; x++ {
		want := byte(0xFF)
		if x < 12 {
			want = 0x00
		}
		if line[x] != want {
			t.Fatalf("column %d: expected %#02x, got %#02x", x, want, line[x])
		}
	}
}

func TestDisplaySettings(t *testing.T) {
	d, panel := testDisplay(t, nil)

	if err := d.SetContrast(20); err != nil {
		t.Fatal(err)
	}
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if err := d.SetRotation(Rotate90); err != ErrRotation {
		t.Errorf("expected %v, got %v", ErrRotation, err)
	}
	if err := d.SetRotation(Rotate180); err != nil {
		t.Fatal(err)
	}
	if err := d.Show(false); err != nil {
		t.Fatal(err)
	}
	// Without backlight pin this is a no-op.
	if err := d.SetBacklight(true); err != nil {
		t.Fatal(err)
	}

	s := panel.State()
	if s.Contrast != 20 || !s.Invert || !s.HorizontalFlip || !s.VerticalFlip || s.On {
		t.Errorf("unexpected state: %+v", s)
	}
	if d.Rotation() != Rotate180 {
		t.Errorf("expected rotation 180°, got %s", d.Rotation())
	}
}

func TestDisplayHalt(t *testing.T) {
	backlight := &gpiotest.Pin{N: "BL", Num: 19}
	d, panel := testDisplay(t, &Config{Backlight: backlight})

	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if panel.State().On {
		t.Errorf("expected display to be off")
	}
	if backlight.L != gpio.Low {
		t.Errorf("expected backlight to be off")
	}

	for name, fn := range map[string]func() error{
		"refresh":  d.Refresh,
		"show":     func() error { return d.Show(true) },
		"contrast": func() error { return d.SetContrast(1) },
		"rotation": func() error { return d.SetRotation(NoRotation) },
		"invert":   func() error { return d.Invert(false) },
		"draw":     func() error { return d.Draw(d.Bounds(), image.Black, image.Point{}) },
	} {
		if err := fn(); err != ErrHalted {
			t.Errorf("%s: expected %v, got %v", name, ErrHalted, err)
		}
	}

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if !panel.Closed() {
		t.Errorf("expected connection to be closed")
	}
}

func TestDisplayNarrow(t *testing.T) {
	d, panel := testDisplay(t, &Config{Width: 64})

	if v := d.Bounds(); !v.Eq(image.Rect(0, 0, 64, 72)) {
		t.Fatalf("expected bounds 64x72, got %s", v)
	}
	d.Set(0, 8, pixel.On)
	d.Set(63, 71, pixel.On)
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}

	ram := panel.RAM()
	if v := ram.Line(1)[0]; v != 0x01 {
		t.Errorf("expected pixel (0,8) in line 1 column 0, got %#02x", v)
	}
	if v := ram.Line(0)[64]; v != 0x00 {
		t.Errorf("expected line 0 column 64 to be untouched, got %#02x", v)
	}
	if v := ram.Line(8)[63]; v != 0x80 {
		t.Errorf("expected pixel (63,71) in line 8 column 63, got %#02x", v)
	}
}
