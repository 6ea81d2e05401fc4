// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"fmt"

	mu "github.com/avdva/floatconv/internal/mathutil"
)

const (
	// MaxWidth is the widest bit pattern Bits can hold.
	MaxWidth = 64
)

// Bits is a fixed-width bit pattern, the most significant bit first.
// The pattern is stored in the low 'width' bits of a uint64:
//
//	63                    width-1                               0
//	________________________|_______________________________________
//	000000000000000000000000seeeeeeeemmmmmmmmmmmmmmmmmmmmmmmmmmmmmmm
//
// The zero Bits has no width and is rejected by Decode and Breakdown.
type Bits struct {
	v     uint64
	width uint8
}

// NewBits returns a pattern of 'width' bits holding the low bits of v.
// NewBits panics if width is not in [1, MaxWidth].
func NewBits(v uint64, width int) Bits {
	if width < 1 || width > MaxWidth {
		panic(fmt.Sprintf("bad bit width %d", width))
	}
	return Bits{v: v & mu.Mask(width), width: uint8(width)}
}

// ParseBits parses a string of '0' and '1' symbols.
// Underscores and spaces may be used to separate groups of bits, like "0 01111 0000000000".
// The width of the result is the number of digits.
func ParseBits(s string) (Bits, error) {
	var (
		v uint64
		n int
	)
	for i, r := range s {
		switch r {
		case '0', '1':
			if n == MaxWidth {
				return Bits{}, newPosError(s, fmt.Sprintf("more than %d bits", MaxWidth), i+1)
			}
			v = v<<1 | uint64(r-'0')
			n++
		case '_', ' ':
		default:
			return Bits{}, newPosError(s, fmt.Sprintf("unexpected symbol %q", r), i+1)
		}
	}
	if n == 0 {
		return Bits{}, &MalformedInputError{Input: s, Reason: "empty input"}
	}
	return Bits{v: v, width: uint8(n)}, nil
}

// MustParseBits is like ParseBits, but panics on errors.
func MustParseBits(s string) Bits {
	b, err := ParseBits(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the width of the pattern.
func (b Bits) Len() int {
	return int(b.width)
}

// Uint64 returns the pattern as an unsigned number.
func (b Bits) Uint64() uint64 {
	return b.v
}

// Bit returns the i-th bit, counting from the most significant one.
// Bit panics if i is out of range.
func (b Bits) Bit(i int) uint {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("bit index %d out of range [0, %d)", i, b.Len()))
	}
	return uint(b.v>>(b.Len()-1-i)) & 1
}

// String returns exactly Len() '0' and '1' symbols.
func (b Bits) String() string {
	buf := make([]byte, b.width)
	for i := range buf {
		buf[i] = '0' + byte(b.v>>(len(buf)-1-i)&1)
	}
	return string(buf)
}

// GoString returns debug string representation.
func (b Bits) GoString() string {
	return b.String() + fmt.Sprintf(" {%#x, %d}", b.v, b.width)
}
