package conn

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// BitBang is a write only SPI bus in mode 0 driven through two GPIO pins.
//
// Data is shifted out most significant bit first, the clock idles low and the
// receiver samples on the rising edge.
type BitBang struct {
	clk, mosi gpio.PinOut
	half      time.Duration
}

// NewBitBang returns a bus on the clk and mosi pins, running at about freq.
// A zero freq runs as fast as the pins can toggle.
func NewBitBang(clk, mosi gpio.PinOut, freq physic.Frequency) (*BitBang, error) {
	if clk == nil || clk == gpio.INVALID {
		return nil, fmt.Errorf("conn: bit bang clock pin is invalid")
	}
	if mosi == nil || mosi == gpio.INVALID {
		return nil, fmt.Errorf("conn: bit bang data pin is invalid")
	}

	b := &BitBang{
		clk:  clk,
		mosi: mosi,
	}
	if freq > 0 {
		b.half = freq.Period() / 2
	}
	if err := clk.Out(gpio.Low); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BitBang) String() string {
	return fmt.Sprintf("bit bang SPI CLK=%s MOSI=%s", b.clk, b.mosi)
}

// Tx shifts out w. Reading is not supported, r must be empty.
func (b *BitBang) Tx(w, r []byte) error {
	if len(r) > 0 {
		return ErrReadLength
	}
	for _, v := range w {
		for bit := 7; bit >= 0; bit-- {
			if err := b.mosi.Out(gpio.Level(v>>bit&1 == 1)); err != nil {
				return err
			}
			b.wait()
			if err := b.clk.Out(gpio.High); err != nil {
				return err
			}
			b.wait()
			if err := b.clk.Out(gpio.Low); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *BitBang) wait() {
	if b.half > 0 {
		time.Sleep(b.half)
	}
}

func (b *BitBang) Duplex() conn.Duplex {
	return conn.Half
}

var _ conn.Conn = (*BitBang)(nil)
