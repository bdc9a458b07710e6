// Package command contains the HX1230 opcodes.
//
// Every opcode is a single byte. Parameterized opcodes mask their argument to
// the width of the register they address, values out of range are silently
// truncated.
package command

// Fixed opcodes.
const (
	Reset             = 0xE2 // Software reset
	PowerOn           = 0x2F // Booster, regulator and follower on
	PowerOff          = 0x28
	HorizontalFlipOn  = 0xA1 // Segment remap
	HorizontalFlipOff = 0xA0
	VerticalFlipOn    = 0xC8 // COM scan direction
	VerticalFlipOff   = 0xC0
	TestOn            = 0xA5 // All pixels on
	TestOff           = 0xA4
	InvertOn          = 0xA7
	InvertOff         = 0xA6
	DisplayOn         = 0xAF
	DisplayOff        = 0xAE
)

const (
	setContrast   = 0x80
	setStartLine  = 0x40
	setPage       = 0xB0
	setColumnLow  = 0x00
	setColumnHigh = 0x10
)

// DefaultContrast is the contrast level used by InitSequence.
const DefaultContrast = 30

// Contrast sets the display contrast (0-31).
func Contrast(level uint8) byte {
	return setContrast | level&0x1F
}

// StartLine sets the display RAM line shown at the top of the panel (0-63).
func StartLine(line uint8) byte {
	return setStartLine | line&0x3F
}

// Page selects the page (y coordinate in bands of 8 pixels) for the next data
// write. The panel has 9 usable pages.
func Page(page uint8) byte {
	return setPage | page&0x0F
}

// ColumnLow sets the low 4 bits of the column address.
func ColumnLow(column uint8) byte {
	return setColumnLow | column&0x0F
}

// ColumnHigh sets the high 3 bits of the column address.
func ColumnHigh(column uint8) byte {
	return setColumnHigh | (column>>4)&0x07
}

// Power switches the internal power circuits.
func Power(on bool) byte {
	if on {
		return PowerOn
	}
	return PowerOff
}

// Display switches the display output.
func Display(on bool) byte {
	if on {
		return DisplayOn
	}
	return DisplayOff
}

// Invert selects negative or normal pixels.
func Invert(on bool) byte {
	if on {
		return InvertOn
	}
	return InvertOff
}

// Test turns all pixels on, regardless of the display RAM.
func Test(on bool) byte {
	if on {
		return TestOn
	}
	return TestOff
}

// HorizontalFlip mirrors the columns.
func HorizontalFlip(on bool) byte {
	if on {
		return HorizontalFlipOn
	}
	return HorizontalFlipOff
}

// VerticalFlip mirrors the rows.
func VerticalFlip(on bool) byte {
	if on {
		return VerticalFlipOn
	}
	return VerticalFlipOff
}

// Position returns the commands selecting the column and page for the next
// data write. The panel latches the address after the high column nibble, so
// the three commands have to be sent together and in this order.
func Position(column, page uint8) [3]byte {
	return [3]byte{
		ColumnLow(column),
		ColumnHigh(column),
		Page(page),
	}
}

// InitSequence returns the commands that bring the panel from reset to a
// blank, powered display with the cursor at the origin.
//
// Power has to come first, the visual mode commands have no effect before.
func InitSequence() []byte {
	return []byte{
		PowerOn,
		Contrast(DefaultContrast),
		TestOff,
		HorizontalFlipOff,
		VerticalFlipOff,
		InvertOff,
		DisplayOn,
		ColumnLow(0),
		ColumnHigh(0),
		Page(0),
	}
}
