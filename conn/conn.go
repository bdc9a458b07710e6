// Package conn contains serial bus backends that move 8-bit words.
//
// Both backends implement periph.io conn.Conn, so they can carry the 9-bit
// words of the hx1230 package.
package conn

import "errors"

// Errors
var (
	ErrNotSupported = errors.New("conn: not supported on this platform")
	ErrReadLength   = errors.New("conn: read and write buffers differ in length")
)

// Definitions from <spi/spidev.h>
const (
	spiCPHA = 0x01
	spiCPOL = 0x02
)

// SPIMode is the clock polarity and phase.
type SPIMode uint8

const (
	SPIMode0 SPIMode = (0 | 0)             //nolint:staticcheck
	SPIMode1 SPIMode = (0 | spiCPHA)       //nolint:staticcheck
	SPIMode2 SPIMode = (spiCPOL | 0)       //nolint:staticcheck
	SPIMode3 SPIMode = (spiCPOL | spiCPHA) //nolint:staticcheck
)
