// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"fmt"
)

// Class is the kind of value a bit pattern holds.
type Class int

const (
	// Zero is a positive or negative zero.
	Zero Class = iota
	// Subnormal is a non-zero value with the exponent field of all zeros.
	Subnormal
	// Normal is a value with an implicit leading 1 in the mantissa.
	Normal
	// Infinity is a positive or negative infinity.
	Infinity
	// NaN is not-a-number.
	NaN
)

var classNames = [...]string{"zero", "subnormal", "normal", "infinity", "nan"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Fields is a bit pattern split into its sign, exponent, and mantissa fields.
type Fields struct {
	Sign          string `json:"sign" yaml:"sign"`
	Exponent      string `json:"exponent" yaml:"exponent"`
	Mantissa      string `json:"mantissa" yaml:"mantissa"`
	SignValue     int    `json:"signValue" yaml:"signValue"`
	ExponentValue uint64 `json:"exponentValue" yaml:"exponentValue"`
	MantissaValue uint64 `json:"mantissaValue" yaml:"mantissaValue"`
	Class         Class  `json:"class" yaml:"class"`
}

// Breakdown splits b into the fields of format f.
// Returns a *MalformedInputError if b is not exactly f.TotalBits() wide.
func Breakdown(b Bits, f Format) (Fields, error) {
	if err := f.check(b); err != nil {
		return Fields{}, err
	}
	neg, exp, mant := f.split(b)
	s := b.String()
	result := Fields{
		Sign:          s[:signBits],
		Exponent:      s[signBits : signBits+f.expBits],
		Mantissa:      s[signBits+f.expBits:],
		ExponentValue: exp,
		MantissaValue: mant,
		Class:         f.classify(exp, mant),
	}
	if neg {
		result.SignValue = 1
	}
	return result, nil
}

// Classify returns the class of the value b holds in format f.
func Classify(b Bits, f Format) (Class, error) {
	if err := f.check(b); err != nil {
		return 0, err
	}
	_, exp, mant := f.split(b)
	return f.classify(exp, mant), nil
}

func (f Format) classify(exp, mant uint64) Class {
	switch {
	case exp == f.expMask() && mant == 0:
		return Infinity
	case exp == f.expMask():
		return NaN
	case exp == 0 && mant == 0:
		return Zero
	case exp == 0:
		return Subnormal
	default:
		return Normal
	}
}
