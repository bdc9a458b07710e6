// Package hx1230 is a driver for the HX1230 96x68 monochrome LCD controller.
//
// The controller takes 9-bit serial words: a control bit telling apart commands
// and display data, followed by the byte itself. Conn packs these words into
// the 8-bit transfers a regular SPI peripheral can do, Dev issues the panel
// commands and Display adds a frame buffer that can be drawn on.
package hx1230

import (
	"log"
	"os"
	"time"

	"github.com/BeatGlow/hx1230/command"
)

var debug bool

func init() {
	debug = os.Getenv("HX1230_DEBUG") != ""
}

// Panel dimensions.
const (
	// Width is the number of columns, one byte per column in each line.
	Width = 96

	// Lines is the number of 8 pixel high lines (pages). The panel has 68 rows
	// of pixels, the last line is only partially visible.
	Lines = 9

	// Height is the height of the frame buffer in pixels.
	Height = Lines * 8

	// ResetDelay is the time the panel needs after a software reset.
	ResetDelay = 100 * time.Microsecond
)

// Buffer is a frame buffer organized in lines of vertical bytes, as sent to
// the panel RAM. pixel.FrameBuffer implements it.
type Buffer interface {
	// Width is the number of bytes per line.
	Width() int

	// LineCount is the number of lines.
	LineCount() int

	// Line returns line y, nil if there is no such line.
	Line(y int) []byte
}

// Dev drives the panel over a Conn.
//
// Dev keeps no state besides the connection, so it is cheap to construct
// whenever the panel has to be talked to.
type Dev struct {
	c Conn
}

// New returns a driver sending over c.
func New(c Conn) *Dev {
	return &Dev{c: c}
}

// NewSPI returns a driver sending 9-bit words over bus, framed by cs.
func NewSPI(bus Bus, cs SelectPin) *Dev {
	return New(NewConn(bus, cs))
}

func (d *Dev) String() string {
	return d.c.String()
}

// Close the connection.
func (d *Dev) Close() error {
	return d.c.Close()
}

// SendCommands sends command bytes as is.
func (d *Dev) SendCommands(commands ...byte) error {
	return d.c.Command(commands...)
}

// SendData sends bytes to the display RAM at the current position.
func (d *Dev) SendData(data ...byte) error {
	return d.c.Data(data...)
}

// Initialize resets the panel and turns it on with a blank configuration and
// the position at the origin. A nil delay uses time.Sleep.
func (d *Dev) Initialize(delay Delayer) (err error) {
	if delay == nil {
		delay = DelayFunc(time.Sleep)
	}
	if debug {
		log.Printf("hx1230: init on %s", d.c)
	}

	if err = d.c.Command(command.Reset); err != nil {
		return
	}
	delay.Delay(ResetDelay)
	return d.c.Command(command.InitSequence()...)
}

// SetPosition selects the column and page for the next data write.
func (d *Dev) SetPosition(column, page uint8) error {
	position := command.Position(column, page)
	return d.c.Command(position[:]...)
}

// SendBuffer sends all lines of buf, starting at the origin.
//
// The panel only moves to the next page after Width columns, so lines of a
// narrower buffer are each positioned at the start of their page.
func (d *Dev) SendBuffer(buf Buffer) (err error) {
	if err = d.SetPosition(0, 0); err != nil {
		return
	}
	for y, n := 0, buf.LineCount(); y < n; y++ {
		if y > 0 && buf.Width() != Width {
			if err = d.SetPosition(0, uint8(y)); err != nil {
				return
			}
		}
		if err = d.c.Data(buf.Line(y)...); err != nil {
			return
		}
	}
	return
}

// Power switches the internal power circuits.
func (d *Dev) Power(on bool) error {
	return d.c.Command(command.Power(on))
}

// Show toggles the display on or off, the display RAM is retained.
func (d *Dev) Show(on bool) error {
	return d.c.Command(command.Display(on))
}

// SetContrast adjusts the contrast level (0-31).
func (d *Dev) SetContrast(level uint8) error {
	return d.c.Command(command.Contrast(level))
}

// Invert toggles negative pixels.
func (d *Dev) Invert(on bool) error {
	return d.c.Command(command.Invert(on))
}

// Test toggles all pixels on.
func (d *Dev) Test(on bool) error {
	return d.c.Command(command.Test(on))
}

// Mirror flips the columns and/or rows.
func (d *Dev) Mirror(horizontal, vertical bool) error {
	return d.c.Command(command.HorizontalFlip(horizontal), command.VerticalFlip(vertical))
}

// SetStartLine scrolls the display RAM line shown at the top of the panel.
func (d *Dev) SetStartLine(line uint8) error {
	return d.c.Command(command.StartLine(line))
}
