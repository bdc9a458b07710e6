package hx1230

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/hx1230/command"
	"github.com/BeatGlow/hx1230/draw"
	"github.com/BeatGlow/hx1230/pixel"
)

// Errors
var (
	ErrRotation = errors.New("hx1230: unsupported rotation, only 0° and 180° are possible")
	ErrHalted   = errors.New("hx1230: display is halted")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels, rounded up to whole lines.
	Height int

	// Rotation of the display, NoRotation or Rotate180.
	Rotation Rotation

	// Contrast level (0-31), zero selects command.DefaultContrast.
	Contrast uint8

	// Reset pin, pulsed low before initialization if set.
	Reset gpio.PinOut

	// Backlight pin, driven high after initialization if set.
	Backlight gpio.PinOut

	// Delay waits during reset, nil uses time.Sleep.
	Delay Delayer
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Width:    Width,
	Height:   Height,
	Contrast: command.DefaultContrast,
}

// Display is a frame buffered HX1230 panel.
//
// Drawing only changes the frame buffer, Refresh sends it to the panel.
type Display struct {
	dev       *Dev
	buf       *pixel.FrameBuffer
	rotation  Rotation
	contrast  uint8
	backlight gpio.PinOut
	halted    bool
}

// Open initializes the panel connected to c and clears it. A nil config uses
// DefaultConfig.
func Open(c Conn, config *Config) (*Display, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if config.Width == 0 {
		config.Width = DefaultConfig.Width
	}
	if config.Height == 0 {
		config.Height = DefaultConfig.Height
	}
	if config.Contrast == 0 {
		config.Contrast = DefaultConfig.Contrast
	}
	if config.Delay == nil {
		config.Delay = DelayFunc(time.Sleep)
	}
	if config.Width < 0 || config.Width > Width || config.Height < 0 || config.Height > Height {
		return nil, fmt.Errorf("hx1230: invalid size %dx%d, maximum size is %dx%d", config.Width, config.Height, Width, Height)
	}
	switch config.Rotation {
	case NoRotation, Rotate180:
	default:
		return nil, ErrRotation
	}

	d := &Display{
		dev:       New(c),
		buf:       pixel.NewFrameBuffer(config.Width, (config.Height+7)/8),
		backlight: config.Backlight,
	}
	if err := d.init(config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Display) init(config *Config) (err error) {
	if config.Reset != nil {
		if err = config.Reset.Out(gpio.Low); err != nil {
			return fmt.Errorf("hx1230: error setting reset low: %w", err)
		}
		config.Delay.Delay(time.Millisecond)
		if err = config.Reset.Out(gpio.High); err != nil {
			return fmt.Errorf("hx1230: error setting reset high: %w", err)
		}
		config.Delay.Delay(time.Millisecond)
	}

	if err = d.dev.Initialize(config.Delay); err != nil {
		return
	}

	d.contrast = command.DefaultContrast
	if config.Contrast != command.DefaultContrast {
		if err = d.SetContrast(config.Contrast); err != nil {
			return
		}
	}
	if config.Rotation != NoRotation {
		if err = d.SetRotation(config.Rotation); err != nil {
			return
		}
	}

	d.buf.Clear()
	if err = d.Refresh(); err != nil {
		return
	}

	if d.backlight != nil {
		if err = d.backlight.Out(gpio.High); err != nil {
			return fmt.Errorf("hx1230: error setting backlight on: %w", err)
		}
	} else if debug {
		log.Println("hx1230: no backlight control")
	}
	return
}

func (d *Display) String() string {
	return fmt.Sprintf("HX1230 %dx%d", d.buf.Rect.Dx(), d.buf.Rect.Dy())
}

// Dev is the underlying driver.
func (d *Display) Dev() *Dev {
	return d.dev
}

// Buffer is the frame buffer.
func (d *Display) Buffer() *pixel.FrameBuffer {
	return d.buf
}

func (d *Display) ColorModel() color.Model {
	return d.buf.ColorModel()
}

func (d *Display) Bounds() image.Rectangle {
	return d.buf.Bounds()
}

func (d *Display) At(x, y int) color.Color {
	return d.buf.At(x, y)
}

func (d *Display) Set(x, y int, c color.Color) {
	d.buf.Set(x, y, c)
}

// Clear the frame buffer.
func (d *Display) Clear() {
	d.buf.Clear()
}

// Draw composes src into the frame buffer at dstRect and refreshes the panel.
func (d *Display) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if d.halted {
		return ErrHalted
	}
	draw.Draw(d.buf, dstRect, src, srcPts, draw.Src)
	return d.Refresh()
}

// Refresh sends the frame buffer to the panel.
func (d *Display) Refresh() error {
	if d.halted {
		return ErrHalted
	}
	return d.dev.SendBuffer(d.buf)
}

// Show toggles the display on or off.
func (d *Display) Show(show bool) error {
	if d.halted {
		return ErrHalted
	}
	return d.dev.Show(show)
}

// Contrast is the current contrast level.
func (d *Display) Contrast() uint8 {
	return d.contrast
}

// SetContrast adjusts the contrast level (0-31).
func (d *Display) SetContrast(level uint8) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.dev.SetContrast(level); err != nil {
		return err
	}
	d.contrast = level & 0x1F
	return nil
}

// Rotation is the current pixel rotation.
func (d *Display) Rotation() Rotation {
	return d.rotation
}

// SetRotation adjusts the pixel rotation. The panel can only mirror, so
// rotating by 90° or 270° returns ErrRotation.
func (d *Display) SetRotation(rotation Rotation) error {
	if d.halted {
		return ErrHalted
	}
	switch rotation {
	case NoRotation, Rotate180:
	default:
		return ErrRotation
	}
	flip := rotation == Rotate180
	if err := d.dev.Mirror(flip, flip); err != nil {
		return err
	}
	d.rotation = rotation
	return nil
}

// Invert toggles negative pixels.
func (d *Display) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	return d.dev.Invert(invert)
}

// SetBacklight switches the backlight, if there is a backlight pin.
func (d *Display) SetBacklight(on bool) error {
	if d.backlight == nil {
		return nil
	}
	return d.backlight.Out(gpio.Level(on))
}

// Halt turns the display and backlight off. The display can not be used after
// it has been halted.
func (d *Display) Halt() error {
	if d.halted {
		return nil
	}
	if err := d.dev.Show(false); err != nil {
		return err
	}
	if err := d.SetBacklight(false); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Close halts the display and closes the connection.
func (d *Display) Close() error {
	if err := d.Halt(); err != nil {
		return err
	}
	return d.dev.Close()
}
