//go:build !linux

package conn

import "periph.io/x/conn/v3"

// SPI is only available on Linux.
type SPI struct{}

func OpenSPI(_, _ int) (*SPI, error) {
	return nil, ErrNotSupported
}

func (c *SPI) Close() error {
	return ErrNotSupported
}

func (c *SPI) String() string {
	return "spidev"
}

func (c *SPI) Tx(_, _ []byte) error {
	return ErrNotSupported
}

func (c *SPI) Duplex() conn.Duplex {
	return conn.DuplexUnknown
}

func (c *SPI) SetMode(_ SPIMode) error {
	return ErrNotSupported
}

func (c *SPI) SetMaxSpeed(_ int) error {
	return ErrNotSupported
}
