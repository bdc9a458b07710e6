// Package hx1230test emulates an HX1230 panel for tests and previews.
//
// A Panel is both the bus and the chip select line of a connection. Bytes
// written while the select line is low are decoded as 9-bit words when it goes
// high again, and applied to an emulated display RAM.
package hx1230test

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/hx1230/command"
	"github.com/BeatGlow/hx1230/ninebit"
	"github.com/BeatGlow/hx1230/pixel"
)

// Errors
var (
	ErrInjected   = errors.New("hx1230test: injected failure")
	ErrMixed      = errors.New("hx1230test: mixed command and data words in one transaction")
	ErrUnselected = errors.New("hx1230test: write while chip select is high")
)

// Transaction is a decoded chip select framed transfer.
type Transaction struct {
	// Data is set for display data, unset for commands.
	Data bool

	// Bytes are the decoded bytes, without control bits.
	Bytes []byte
}

func (t Transaction) String() string {
	if t.Data {
		return fmt.Sprintf("data %#02x", t.Bytes)
	}
	return fmt.Sprintf("command %#02x", t.Bytes)
}

// State is the emulated controller state.
type State struct {
	Power          bool
	On             bool
	Invert         bool
	Test           bool
	HorizontalFlip bool
	VerticalFlip   bool
	Contrast       uint8
	StartLine      uint8
	Column         int
	Page           int

	// Resets counts the software resets.
	Resets int
}

// Panel is an emulated HX1230 panel.
//
// It implements the Bus and SelectPin interfaces of the driver. If Out is
// never called, every Tx is handled as one transaction, like a bus with a
// hardware select line.
type Panel struct {
	mu           sync.Mutex
	ram          *pixel.FrameBuffer
	state        State
	usesCS       bool
	selected     bool
	pending      []byte
	transactions []Transaction
	writes       int
	failAfter    int
	failErr      error
	csErr        error
	err          error
	closed       bool
}

// NewPanel returns a blank, powered off panel with lines of width columns.
func NewPanel(width, lines int) *Panel {
	return &Panel{
		ram:       pixel.NewFrameBuffer(width, lines),
		failAfter: -1,
	}
}

func (p *Panel) String() string {
	return fmt.Sprintf("emulated HX1230 %dx%d", p.ram.Rect.Dx(), p.ram.Rect.Dy())
}

// Tx receives the bytes in w. Reads return zeroes.
func (p *Panel) Tx(w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failAfter >= 0 {
		if p.failAfter == 0 {
			return p.failErr
		}
		p.failAfter--
	}
	p.writes++

	for i := range r {
		r[i] = 0
	}

	switch {
	case !p.usesCS:
		p.receive(w)
	case !p.selected:
		p.setErr(ErrUnselected)
	default:
		p.pending = append(p.pending, w...)
	}
	return nil
}

// Out sets the chip select line, the transaction ends on the rising edge.
func (p *Panel) Out(level gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.csErr != nil {
		return p.csErr
	}
	p.usesCS = true

	if level == gpio.Low {
		if !p.selected {
			p.selected = true
			p.pending = p.pending[:0]
		}
		return nil
	}
	if p.selected {
		p.selected = false
		p.receive(p.pending)
	}
	return nil
}

// Close marks the panel closed.
func (p *Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports if Close has been called.
func (p *Panel) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// FailAfter lets Tx fail with err after n more successful writes. A nil err
// uses ErrInjected, a negative n disables the failure.
func (p *Panel) FailAfter(n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	p.failAfter, p.failErr = n, err
}

// FailCS lets Out fail with err, nil disables the failure.
func (p *Panel) FailCS(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.csErr = err
}

// Err is the first protocol error seen.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Writes is the number of successful Tx calls.
func (p *Panel) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// Transactions returns the decoded transactions so far.
func (p *Panel) Transactions() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Transaction, len(p.transactions))
	copy(out, p.transactions)
	return out
}

// ClearTransactions forgets the recorded transactions.
func (p *Panel) ClearTransactions() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = nil
}

// State returns the controller state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// RAM returns a copy of the display RAM.
func (p *Panel) RAM() *pixel.FrameBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	ram := pixel.NewFrameBuffer(p.ram.Width(), p.ram.LineCount())
	copy(ram.Pix, p.ram.Pix)
	return ram
}

// Image renders what the panel shows, dark pixels are black.
func (p *Panel) Image() *image.Gray {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		r   = p.ram.Bounds()
		img = image.NewGray(r)
		s   = p.state
	)
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			var on bool
			switch {
			case !s.Power || !s.On:
			case s.Test:
				on = true
			default:
				sx, sy := x, (y+int(s.StartLine))%r.Dy()
				if s.HorizontalFlip {
					sx = r.Dx() - 1 - sx
				}
				if s.VerticalFlip {
					sy = r.Dy() - 1 - sy
				}
				on = p.ram.At(sx, sy).(pixel.Mono).On != s.Invert
			}
			if on {
				img.SetGray(x, y, color.Gray{Y: 0x00})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

func (p *Panel) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Panel) receive(b []byte) {
	if len(b) == 0 {
		return
	}

	words := make([]ninebit.Word, len(b)*8/9)
	n, err := ninebit.Decode(words, b)
	if err != nil {
		p.setErr(fmt.Errorf("hx1230test: decoding %#02x: %w", b, err))
	}
	if n == 0 {
		return
	}

	var (
		control = words[0].Control()
		data    = make([]byte, n)
	)
	for i, w := range words[:n] {
		if w.Control() != control {
			p.setErr(ErrMixed)
		}
		data[i] = w.Byte()
	}
	p.transactions = append(p.transactions, Transaction{
		Data:  control == ninebit.Data,
		Bytes: data,
	})

	for i, w := range words[:n] {
		if w.Control() == ninebit.Data {
			p.write(data[i])
		} else {
			p.command(data[i])
		}
	}
}

func (p *Panel) write(b byte) {
	if line := p.ram.Line(p.state.Page); p.state.Column < len(line) {
		line[p.state.Column] = b
	}
	if p.state.Column++; p.state.Column >= p.ram.Width() {
		p.state.Column = 0
		p.state.Page++
	}
}

func (p *Panel) command(b byte) {
	switch {
	case b == command.Reset:
		p.state = State{Resets: p.state.Resets + 1}
	case b == command.PowerOn, b == command.PowerOff:
		p.state.Power = b == command.PowerOn
	case b == command.DisplayOn, b == command.DisplayOff:
		p.state.On = b == command.DisplayOn
	case b == command.InvertOn, b == command.InvertOff:
		p.state.Invert = b == command.InvertOn
	case b == command.TestOn, b == command.TestOff:
		p.state.Test = b == command.TestOn
	case b == command.HorizontalFlipOn, b == command.HorizontalFlipOff:
		p.state.HorizontalFlip = b == command.HorizontalFlipOn
	case b == command.VerticalFlipOn, b == command.VerticalFlipOff:
		p.state.VerticalFlip = b == command.VerticalFlipOn
	case b&0xE0 == 0x80:
		p.state.Contrast = b & 0x1F
	case b&0xC0 == 0x40:
		p.state.StartLine = b & 0x3F
	case b&0xF0 == 0xB0:
		p.state.Page = int(b & 0x0F)
	case b&0xF0 == 0x00:
		p.state.Column = p.state.Column&^0x0F | int(b&0x0F)
	case b&0xF8 == 0x10:
		p.state.Column = p.state.Column&0x0F | int(b&0x07)<<4
	}
}
