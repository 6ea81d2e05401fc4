package floatconv

import (
	"fmt"
	"strings"

	mu "github.com/avdva/floatconv/internal/mathutil"
)

const hexDigits = "0123456789ABCDEF"

// ToHex returns b as uppercase hex digits, without a prefix.
// The pattern is left-padded with zeros to a multiple of 4 bits,
// so a 4-bit value gives one digit, and a 10-bit value gives three.
func ToHex(b Bits) string {
	buf := make([]byte, mu.HexDigits(b.Len()))
	v := b.v
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(buf)
}

// FromHex parses a hex string into a pattern of 'totalBits' bits.
// An optional 0x or 0X prefix is stripped, underscores are ignored.
// Values that need more than totalBits bits are rejected rather than truncated.
func FromHex(s string, totalBits int) (Bits, error) {
	if totalBits < 1 || totalBits > MaxWidth {
		return Bits{}, &MalformedInputError{Input: s, Reason: fmt.Sprintf("bad bit width %d", totalBits)}
	}
	digits, offset := s, 0
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, offset = digits[2:], 2
	}
	var (
		v uint64
		n int
	)
	for i, r := range digits {
		var d uint64
		switch {
		case '0' <= r && r <= '9':
			d = uint64(r - '0')
		case 'a' <= r && r <= 'f':
			d = uint64(r-'a') + 10
		case 'A' <= r && r <= 'F':
			d = uint64(r-'A') + 10
		case r == '_':
			continue
		default:
			return Bits{}, newPosError(s, fmt.Sprintf("unexpected symbol %q", r), offset+i+1)
		}
		if v>>(MaxWidth-4) != 0 {
			return Bits{}, newPosError(s, fmt.Sprintf("value does not fit %d bits", totalBits), offset+i+1)
		}
		v = v<<4 | d
		n++
	}
	if n == 0 {
		return Bits{}, &MalformedInputError{Input: s, Reason: "empty input"}
	}
	if need := mu.BinaryDigits(v); need > totalBits {
		return Bits{}, &MalformedInputError{
			Input:  s,
			Reason: fmt.Sprintf("value needs %d bits, but only %d are available", need, totalBits),
		}
	}
	return NewBits(v, totalBits), nil
}
