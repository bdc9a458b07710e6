package conn

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"periph.io/x/conn/v3"

	"github.com/BeatGlow/hx1230/internal/ioctl"
)

const spiDevPath = "/dev/spidev"

const (
	spiIOCMessage     = 0x6b00
	spiIOCMode        = 0x6b01
	spiIOCBitsPerWord = 0x6b03
	spiIOCMaxSpeedHz  = 0x6b04
)

// spiTransfer is struct spi_ioc_transfer.
type spiTransfer struct {
	txBuf       uint64
	rxBuf       uint64
	length      uint32
	speedHz     uint32
	delayUsecs  uint16
	bitsPerWord uint8
	csChange    uint8
	txNBits     uint8
	rxNBits     uint8
	wordDelay   uint8
	_           uint8
}

// SPI implements the spidev interface.
type SPI struct {
	f           *os.File
	fd          uintptr
	name        string
	mode        SPIMode
	bitsPerWord uint8
	maxSpeedHz  uint32
}

// OpenSPI opens the numbered spi bus with the numbered device. The device often corresponds to the CS pin for that bus.
func OpenSPI(bus, device int) (*SPI, error) {
	spidev := fmt.Sprintf("%s%d.%d", spiDevPath, bus, device)
	f, err := os.OpenFile(spidev, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	c := &SPI{
		f:    f,
		fd:   f.Fd(),
		name: spidev,
	}
	if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &c.mode, spiIOCMode), &c.mode); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &c.bitsPerWord, spiIOCBitsPerWord), &c.bitsPerWord); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err = ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &c.maxSpeedHz, spiIOCMaxSpeedHz), &c.maxSpeedHz); err != nil {
		_ = f.Close()
		return nil, err
	}

	return c, nil
}

func (c *SPI) Close() error {
	return c.f.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("%s mode=%d bits per word=%d max speed=%dHz", c.name, c.mode, c.bitsPerWord, c.maxSpeedHz)
}

func (c *SPI) Mode() SPIMode {
	return c.mode
}

func (c *SPI) SetMode(mode SPIMode) error {
	mode &= 0x0f

	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &mode, spiIOCMode), &mode); err != nil {
		return err
	}

	var test SPIMode
	if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Read, &test, spiIOCMode), &test); err != nil {
		return err
	}

	if test != mode {
		return fmt.Errorf("conn: SPI attempted to set mode %#02x, but mode %#02x is in use", mode, test)
	}

	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() uint8 {
	return c.bitsPerWord
}

func (c *SPI) SetBitsPerWord(bits uint8) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}

	if c.bitsPerWord != bits {
		if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &bits, spiIOCBitsPerWord), &bits); err != nil {
			return err
		}
		c.bitsPerWord = bits
	}

	return nil
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeedHz)
}

func (c *SPI) SetMaxSpeed(v int) error {
	if v < 0 {
		return nil
	}

	u := uint32(v)
	if c.maxSpeedHz != u {
		if err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &u, spiIOCMaxSpeedHz), &u); err != nil {
			return err
		}
		c.maxSpeedHz = u
	}

	return nil
}

// Tx does a single full duplex transfer with the chip select asserted. If r
// is not empty, it must be as long as w.
func (c *SPI) Tx(w, r []byte) error {
	if len(w) == 0 && len(r) == 0 {
		return nil
	}
	if len(w) > 0 && len(r) > 0 && len(w) != len(r) {
		return ErrReadLength
	}

	xfer := spiTransfer{
		speedHz:     c.maxSpeedHz,
		bitsPerWord: c.bitsPerWord,
	}
	if len(w) > 0 {
		xfer.txBuf = uint64(uintptr(unsafe.Pointer(&w[0])))
		xfer.length = uint32(len(w))
	}
	if len(r) > 0 {
		xfer.rxBuf = uint64(uintptr(unsafe.Pointer(&r[0])))
		xfer.length = uint32(len(r))
	}
	err := ioctl.Do(c.fd, ioctl.Pointer(ioctl.Write, &xfer, spiIOCMessage), &xfer)
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	return err
}

func (c *SPI) Duplex() conn.Duplex {
	return conn.Full
}

func (c *SPI) Read(b []byte) (n int, err error) {
	return c.f.Read(b)
}

func (c *SPI) Write(b []byte) (n int, err error) {
	return c.f.Write(b)
}

var _ conn.Conn = (*SPI)(nil)
