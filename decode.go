// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"math"
)

// Decode returns the value of b in format f.
// Returns a *MalformedInputError if b is not exactly f.TotalBits() wide.
// NaNs are always returned as math.NaN(), their sign and payload are ignored.
// Values outside of the float64 range, possible for custom formats with
// wide exponents, become infinities or zeros.
func Decode(b Bits, f Format) (float64, error) {
	if err := f.check(b); err != nil {
		return 0, err
	}
	neg, exp, mant := f.split(b)
	sign := 1.0
	if neg {
		sign = -1
	}
	switch exp {
	case f.expMask():
		if mant == 0 {
			return math.Inf(int(sign)), nil
		}
		return math.NaN(), nil
	case 0: // zero or subnormal: mant * 2^-(bias-1+m)
		return math.Copysign(math.Ldexp(float64(mant), -(f.bias-1+f.mantBits)), sign), nil
	}
	// (1 + mant/2^m) * 2^(exp-bias)
	significand := float64(mant | 1<<f.mantBits)
	return math.Copysign(math.Ldexp(significand, int(exp)-f.bias-f.mantBits), sign), nil
}

// DecodeString parses s with ParseBits and decodes the result.
func DecodeString(s string, f Format) (float64, error) {
	b, err := ParseBits(s)
	if err != nil {
		return 0, err
	}
	return Decode(b, f)
}
