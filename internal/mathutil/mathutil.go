package mathutil

import (
	"math"
	"math/bits"
	"unsafe"
)

// log10of2 is used to estimate how many decimal digits a binary significand preserves.
const log10of2 = 0.30102999566398119521373889472449302676818988146210854131

// Mask returns a mask with the n lowest bits set. n must be in [0, 64].
func Mask(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(n) - 1
}

// BinaryDigits returns the number of bits needed to represent 'value'.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// HexDigits returns the number of hex digits needed to show 'width' bits.
func HexDigits(width int) int {
	return (width + 3) / 4
}

// FloorLog2 returns such e, that 2^e <= abs(f) < 2^(e+1).
// Unlike math.Floor(math.Log2(f)) the result is exact near powers of two.
// Returns 0 for zeros, infinities, and not-a-numbers.
func FloorLog2(f float64) int {
	if f == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	_, e := math.Frexp(math.Abs(f)) // f = frac * 2^e, 0.5 <= frac < 1
	return e - 1
}

// RoundHalfAway rounds a non-negative f to the nearest integer, with halves rounded up.
// Negative values and NaNs return 0, values above MaxUint64 saturate.
func RoundHalfAway(f float64) uint64 {
	r := math.Round(f)
	switch {
	case !(r > 0):
		return 0
	case r >= 1<<64:
		return math.MaxUint64
	}
	return uint64(r)
}

// DecimalDigits returns the number of decimal digits that survive
// a round trip through a binary significand of 'sigBits' bits.
func DecimalDigits(sigBits int) int {
	if sigBits <= 0 {
		return 0
	}
	return int(math.Floor(float64(sigBits) * log10of2))
}
