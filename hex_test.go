package floatconv

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHex(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		b   Bits
		res string
	}{
		{Encode(1, FP16), "3C00"},
		{Encode(1.5, FP32), "3FC00000"},
		{Encode(-2, FP64), "C000000000000000"},
		{Encode(-6, NVFP4E2M1), "E"},
		{Encode(240, FP8E4M3), "77"},
		{NewBits(0x3ff, 10), "3FF"},
		{NewBits(1, 1), "1"},
		{NewBits(0, 5), "00"},
		{NewBits(0xabc, 12), "ABC"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, ToHex(test.b))
		})
	}
}

func TestFromHex(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s     string
		width int
		res   string
		err   string
	}{
		{"3C00", 16, "0011110000000000", ""},
		{"0x3c00", 16, "0011110000000000", ""},
		{"0X3FC0_0000", 32, "00111111110000000000000000000000", ""},
		{"e", 4, "1110", ""},
		{"1", 16, "0000000000000001", ""},
		{"3ff", 10, "1111111111", ""},
		{"FFFFFFFFFFFFFFFF", 64, "1111111111111111111111111111111111111111111111111111111111111111", ""},
		{"0000000000000000001", 8, "00000001", ""},
		{"", 16, "", `malformed input "": empty input`},
		{"0x", 16, "", `malformed input "0x": empty input`},
		{"3G00", 16, "", `malformed input "3G00": unexpected symbol 'G' at pos 2`},
		{"0x3c-0", 16, "", `malformed input "0x3c-0": unexpected symbol '-' at pos 5`},
		{"1FFFF", 16, "", `malformed input "1FFFF": value needs 17 bits, but only 16 are available`},
		{"10", 4, "", `malformed input "10": value needs 5 bits, but only 4 are available`},
		{"10000000000000000", 64, "", `malformed input "10000000000000000": value does not fit 64 bits at pos 17`},
		{"1", 0, "", `malformed input "1": bad bit width 0`},
		{"1", 65, "", `malformed input "1": bad bit width 65`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			b, err := FromHex(test.s, test.width)
			if len(test.err) > 0 {
				a.EqualError(err, test.err)
				a.True(errors.Is(err, ErrMalformedInput))
				return
			}
			if a.NoError(err) {
				a.Equal(test.res, b.String())
				a.Equal(test.width, b.Len())
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	a := assert.New(t)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		width := r.Intn(MaxWidth) + 1
		b := NewBits(r.Uint64(), width)
		back, err := FromHex(ToHex(b), width)
		if !a.NoError(err) || !a.Equal(b, back) {
			return
		}
	}
}
