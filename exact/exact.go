// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package exact shows binary floating-point values as exact decimals.
// Every finite binary float is M*2^E for integer M and E, so its decimal
// expansion always terminates. Zeros lose their sign, decimals have no negative zero.
package exact

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/avdva/floatconv"
	"github.com/shopspring/decimal"
)

// maxScale limits the binary exponent of an expansion.
// Wider custom formats would produce numbers with millions of digits.
const maxScale = 1 << 16

// relPrecision is the number of decimal places of relative errors.
const relPrecision = 20

var (
	// ErrNotFinite is returned for infinities and NaNs, which have no decimal value.
	ErrNotFinite = errors.New("value is not finite")
	// ErrTooWide is returned when an exact expansion would be too large.
	ErrTooWide = errors.New("exponent is too wide for an exact expansion")

	five = big.NewInt(5)
)

// Range holds the exact limits of a format.
type Range struct {
	// Max is the largest finite value.
	Max decimal.Decimal
	// Min is -Max.
	Min decimal.Decimal
	// MaxNormal and MinNormal are the largest and the smallest positive normal values.
	// Both are zero if the format has no normal values, that is it has one exponent bit.
	MaxNormal decimal.Decimal
	MinNormal decimal.Decimal
	// SmallestPositive is the smallest positive subnormal.
	SmallestPositive decimal.Decimal
}

// Quantization describes what happens to a value stored in a format.
type Quantization struct {
	Bits floatconv.Bits
	// Input is the exact value of the float64 passed to Quantize.
	Input decimal.Decimal
	// Stored is the exact value of Bits. It's zero if the value overflowed.
	Stored decimal.Decimal
	// StoredFloat is Bits decoded to float64, an infinity on overflow.
	StoredFloat float64
	// AbsError is |Stored - Input|, RelError is AbsError / |Input|.
	// Both are zero on overflow and RelError is zero for zero inputs.
	AbsError decimal.Decimal
	RelError decimal.Decimal
	// Overflow is set if a finite input became an infinity.
	Overflow bool
	// Underflow is set if a non-zero input became a zero.
	Underflow bool
}

// Value returns the exact value of b in format f.
// Returns ErrNotFinite for infinities and NaNs.
func Value(b floatconv.Bits, f floatconv.Format) (decimal.Decimal, error) {
	fields, err := floatconv.Breakdown(b, f)
	if err != nil {
		return decimal.Zero, err
	}
	var (
		m = fields.MantissaValue
		e = int64(1) - int64(f.Bias()) - int64(f.MantissaBits())
	)
	switch fields.Class {
	case floatconv.Infinity, floatconv.NaN:
		return decimal.Zero, fmt.Errorf("%s: %w", fields.Class, ErrNotFinite)
	case floatconv.Zero:
		return decimal.Zero, nil
	case floatconv.Normal:
		m |= 1 << f.MantissaBits()
		e = int64(fields.ExponentValue) - int64(f.Bias()) - int64(f.MantissaBits())
	}
	mant := new(big.Int).SetUint64(m)
	if fields.SignValue == 1 {
		mant.Neg(mant)
	}
	return expand(mant, e)
}

// Float returns the exact value of v.
// Returns ErrNotFinite for infinities and NaNs.
func Float(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%v: %w", v, ErrNotFinite)
	}
	if v == 0 {
		return decimal.Zero, nil
	}
	frac, e := math.Frexp(v) // v = frac * 2^e, 0.5 <= |frac| < 1
	return expand(big.NewInt(int64(math.Ldexp(frac, 53))), int64(e)-53)
}

// Limits returns the exact range of format f.
func Limits(f floatconv.Format) (Range, error) {
	var (
		r        Range
		err      error
		m        = f.MantissaBits()
		topExp   = uint64(1)<<f.ExponentBits() - 2
		mantMask = uint64(1)<<m - 1
	)
	pattern := func(exp, mant uint64) floatconv.Bits {
		return floatconv.NewBits(exp<<m|mant, f.TotalBits())
	}
	if r.SmallestPositive, err = Value(pattern(0, 1), f); err != nil {
		return Range{}, err
	}
	if topExp >= 1 {
		if r.MaxNormal, err = Value(pattern(topExp, mantMask), f); err != nil {
			return Range{}, err
		}
		if r.MinNormal, err = Value(pattern(1, 0), f); err != nil {
			return Range{}, err
		}
		r.Max = r.MaxNormal
	} else {
		r.MaxNormal, r.MinNormal = decimal.Zero, decimal.Zero
		if r.Max, err = Value(pattern(0, mantMask), f); err != nil {
			return Range{}, err
		}
	}
	r.Min = r.Max.Neg()
	return r, nil
}

// Quantize stores v in format f and reports the exact loss.
// Overflows and underflows are reported with flags, they are not errors.
// Returns ErrNotFinite if v is an infinity or a NaN.
func Quantize(v float64, f floatconv.Format) (Quantization, error) {
	input, err := Float(v)
	if err != nil {
		return Quantization{}, err
	}
	b := floatconv.Encode(v, f)
	stored, err := floatconv.Decode(b, f)
	if err != nil {
		return Quantization{}, err
	}
	q := Quantization{
		Bits:        b,
		Input:       input,
		Stored:      decimal.Zero,
		StoredFloat: stored,
		AbsError:    decimal.Zero,
		RelError:    decimal.Zero,
		Underflow:   v != 0 && stored == 0,
	}
	if math.IsInf(stored, 0) {
		q.Overflow = true
		return q, nil
	}
	if q.Stored, err = Value(b, f); err != nil {
		return Quantization{}, err
	}
	q.AbsError = q.Stored.Sub(input).Abs()
	if !input.IsZero() {
		q.RelError = q.AbsError.DivRound(input.Abs(), relPrecision)
	}
	return q, nil
}

// expand returns m * 2^e as a decimal.
// For negative e, m * 2^e = m * 5^-e * 10^e.
func expand(m *big.Int, e int64) (decimal.Decimal, error) {
	if e > maxScale || e < -maxScale {
		return decimal.Zero, fmt.Errorf("2^%d: %w", e, ErrTooWide)
	}
	if e >= 0 {
		return decimal.NewFromBigInt(new(big.Int).Lsh(m, uint(e)), 0), nil
	}
	p := new(big.Int).Exp(five, big.NewInt(-e), nil)
	return decimal.NewFromBigInt(p.Mul(p, m), int32(e)), nil
}
