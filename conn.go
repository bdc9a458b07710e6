package hx1230

import (
	"errors"
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/BeatGlow/hx1230/ninebit"
)

// Conn errors.
var (
	ErrCSPin = errors.New("hx1230: chip select (CS) GPIO pin is invalid")
)

// Bus is the raw 8-bit serial transmit primitive.
//
// It is satisfied by periph.io conn.Conn and spi.Conn, by tinygo drivers.SPI
// and by the backends in package conn.
type Bus interface {
	Tx(w, r []byte) error
}

// SelectPin is the chip select line gating the panel's attention. Any periph.io
// gpio.PinOut will do.
type SelectPin interface {
	Out(gpio.Level) error
}

// Conn is the connection interface for communicating with the panel.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends command bytes.
	Command(...byte) error

	// Data sends display data bytes.
	Data(...byte) error
}

// spiConn sends bytes as 9-bit words, in blocks of at most ninebit.BlockSize
// bytes with the select line asserted around each block.
type spiConn struct {
	bus Bus
	cs  SelectPin
}

// NewConn returns a Conn packing bytes into 9-bit words on bus. If cs is nil,
// the bus is expected to frame each transaction with a hardware select line.
func NewConn(bus Bus, cs SelectPin) Conn {
	return &spiConn{
		bus: bus,
		cs:  cs,
	}
}

func (c *spiConn) String() string {
	if s, ok := c.bus.(fmt.Stringer); ok {
		return fmt.Sprintf("HX1230 9-bit on %s", s)
	}
	return "HX1230 9-bit"
}

func (c *spiConn) Close() error {
	if closer, ok := c.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *spiConn) Command(data ...byte) error {
	return c.transmit(data, ninebit.Command)
}

func (c *spiConn) Data(data ...byte) error {
	return c.transmit(data, ninebit.Data)
}

func (c *spiConn) transmit(data []byte, control byte) error {
	if debug && len(data) > 0 {
		log.Printf("hx1230: transmit %d bytes (control %d) in %d blocks", len(data), control,
			(len(data)+ninebit.BlockSize-1)/ninebit.BlockSize)
	}
	for len(data) > 0 {
		n := len(data)
		if n > ninebit.BlockSize {
			n = ninebit.BlockSize
		}
		if err := c.transmitBlock(data[:n], control); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (c *spiConn) transmitBlock(block []byte, control byte) (err error) {
	var (
		buf [ninebit.MaxEncodedSize]byte
		n   = ninebit.Encode(&buf, block, control)
	)
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.bus.Tx(buf[:n], nil); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Port is the periph.io SPI port name, empty selects the first port.
	Port string

	// SpeedHz is the bus clock, it must be one of ValidSPISpeeds.
	SpeedHz uint32

	// CS is the chip select pin. If nil, the port's hardware chip select is
	// used.
	CS gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	SpeedHz: 4_000_000,
}

// ValidSPISpeeds are the bus speeds the panel is known to work at.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
}

type portConn struct {
	Conn
	port spi.PortCloser
}

func (c *portConn) Close() error {
	return c.port.Close()
}

// OpenSPI opens a periph.io SPI port in mode 0 with 8 bits per word.
//
// The host drivers have to be loaded with host.Init first.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.CS == gpio.INVALID {
		return nil, ErrCSPin
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("hx1230: invalid SPI speed %dHz", config.SpeedHz)
	}

	p, err := spireg.Open(config.Port)
	if err != nil {
		return nil, fmt.Errorf("hx1230: error opening SPI port %q: %w", config.Port, err)
	}

	c, err := p.Connect(physic.Frequency(config.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("hx1230: error connecting to %s: %w", p, err)
	}

	var cs SelectPin
	if config.CS != nil {
		if err = config.CS.Out(gpio.High); err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("hx1230: error setting CS high: %w", err)
		}
		cs = config.CS
	}

	if debug {
		log.Printf("hx1230: using %s at %s", c, physic.Frequency(config.SpeedHz)*physic.Hertz)
	}

	return &portConn{
		Conn: NewConn(c, cs),
		port: p,
	}, nil
}
