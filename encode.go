// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"fmt"
	"math"

	mu "github.com/avdva/floatconv/internal/mathutil"
	"golang.org/x/exp/constraints"
)

// Encode returns the bit pattern of v in format f.
// Encode never fails:
//   - NaN is encoded as a canonical positive quiet NaN, the payload of v is not preserved;
//   - infinities and values too large for f become infinities of the same sign;
//   - values too small for the subnormal range become zeros of the same sign;
//   - other values lose the low bits of their mantissa.
//
// The mantissa is rounded half away from zero, not to nearest even,
// so ties may differ from what hardware conversions produce.
//
// Encode panics if f is not valid, like the zero Format.
func Encode(v float64, f Format) Bits {
	if !f.valid() {
		panic("floatconv: encoding with an invalid format")
	}
	switch {
	case math.IsNaN(v):
		return f.pack(false, f.expMask(), 1<<(f.mantBits-1))
	case math.IsInf(v, 0):
		return f.pack(v < 0, f.expMask(), 0)
	case v == 0:
		return f.pack(math.Signbit(v), 0, 0)
	}
	neg, abs := math.Signbit(v), math.Abs(v)
	e := mu.FloorLog2(abs)
	biased := e + f.bias
	if biased <= 0 {
		return encodeSubnormal(neg, abs, f)
	}
	frac := math.Ldexp(abs, -e) - 1 // 0 <= frac < 1, the implicit leading 1 is dropped.
	mant := mu.RoundHalfAway(math.Ldexp(frac, f.mantBits))
	if mant == 1<<f.mantBits { // 1.11..1 rounded up to 10.00..0
		mant = 0
		biased++
	}
	if uint64(biased) >= f.expMask() {
		return f.pack(neg, f.expMask(), 0)
	}
	if mant > f.mantMask() {
		panic(fmt.Sprintf("mantissa %#x overflows %d bits for %v", mant, f.mantBits, v))
	}
	return f.pack(neg, uint64(biased), mant)
}

// encodeSubnormal encodes abs < 2^(1-bias). The mantissa is abs/2^(1-bias-m), so it's at most 2^m.
// 2^m occupies the lowest exponent bit, which is exactly the encoding of the smallest normal.
func encodeSubnormal(neg bool, abs float64, f Format) Bits {
	mant := mu.RoundHalfAway(math.Ldexp(abs, f.bias-1+f.mantBits))
	if mant > 1<<f.mantBits {
		panic(fmt.Sprintf("subnormal mantissa %#x overflows %d bits", mant, f.mantBits))
	}
	exp := mant >> f.mantBits
	if exp == f.expMask() { // a single exponent bit: the carry lands on infinity.
		return f.pack(neg, exp, 0)
	}
	return f.pack(neg, exp, mant&f.mantMask())
}

// EncodeFloat is like Encode, but accepts any floating-point type.
func EncodeFloat[T constraints.Float](v T, f Format) Bits {
	return Encode(float64(v), f)
}
