// Package ninebit packs 9-bit serial words into 8-bit bytes.
//
// Controllers like the HX1230 expect every byte on the wire to be preceded by
// a control bit, telling apart commands (0) and display data (1). Most SPI
// peripherals only shift out 8-bit words, so up to eight 9-bit words are
// concatenated, most significant bit first, and cut into bytes:
//
//	c7654321 0c765432 10c76543 ...
//
// The last byte is padded with zero bits.
package ninebit

import "errors"

const (
	// BlockSize is the maximum number of bytes encoded at once.
	BlockSize = 8

	// MaxEncodedSize is the size of an encoded block of BlockSize bytes.
	MaxEncodedSize = BlockSize + 1
)

// Control bits.
const (
	Command byte = 0
	Data    byte = 1
)

// Errors
var (
	ErrPadding = errors.New("ninebit: non-zero padding bits")
	ErrShort   = errors.New("ninebit: destination too short")
)

// Word is a 9-bit word, bit 8 is the control bit.
type Word uint16

// MakeWord builds a word from a control bit and a data byte.
func MakeWord(control, b byte) Word {
	return Word(control&1)<<8 | Word(b)
}

// Control bit of the word.
func (w Word) Control() byte {
	return byte(w>>8) & 1
}

// Byte returns the data bits of the word.
func (w Word) Byte() byte {
	return byte(w)
}

// Encode packs up to BlockSize bytes of src, each preceded by the control bit,
// into dst. Bytes beyond BlockSize are ignored. It returns the number of
// encoded bytes, which is len(src)+1 for 1 to 8 input bytes and 0 for none.
func Encode(dst *[MaxEncodedSize]byte, src []byte, control byte) int {
	n := len(src)
	if n > BlockSize {
		n = BlockSize
	}
	if n == 0 {
		return 0
	}

	*dst = [MaxEncodedSize]byte{}
	control &= 1
	for i := 0; i < n; i++ {
		// Word i starts in byte i, shifted right by i bits.
		dst[i] |= control << (7 - i)
		if i == BlockSize-1 {
			dst[i+1] = src[i]
		} else {
			dst[i] |= src[i] >> (i + 1)
			dst[i+1] |= src[i] << (7 - i)
		}
	}
	return n + 1
}

// EncodedLen is the number of bytes Encode produces for n input bytes.
func EncodedLen(n int) int {
	if n <= 0 {
		return 0
	}
	if n > BlockSize {
		n = BlockSize
	}
	return (9*n + 7) / 8
}

// Decode unpacks all complete 9-bit words in src into dst and returns the
// number of words. Trailing bits that do not form a complete word must be
// zero, otherwise ErrPadding is returned along with the decoded words.
func Decode(dst []Word, src []byte) (int, error) {
	var (
		bits = len(src) * 8
		n    = bits / 9
	)
	if n > len(dst) {
		return 0, ErrShort
	}

	bit := func(pos int) Word {
		return Word(src[pos>>3]>>(7-pos&7)) & 1
	}
	for i := 0; i < n; i++ {
		var w Word
		for pos := i * 9; pos < i*9+9; pos++ {
			w = w<<1 | bit(pos)
		}
		dst[i] = w
	}
	for pos := n * 9; pos < bits; pos++ {
		if bit(pos) != 0 {
			return n, ErrPadding
		}
	}
	return n, nil
}
