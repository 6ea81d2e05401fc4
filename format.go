// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package floatconv converts real numbers between float64 and binary
// floating-point layouts of arbitrary width, like fp16, bf16, or fp8-e4m3.
// A layout consists of one sign bit, e exponent bits, and m mantissa bits:
//
//	total-1   total-2      m-1                0
//	_|________|____________|__________________
//	 seeeeeeeeemmmmmmmmmmmmmmmmmmmmmmmmmmmmmmm
//
// All functions are pure and safe for concurrent use.
package floatconv

import (
	"fmt"
	"math"

	mu "github.com/avdva/floatconv/internal/mathutil"
)

const (
	signBits        = 1
	maxExponentBits = 30
	maxBias         = 1 << (maxExponentBits - 1)
)

// Layout is a plain description of a floating-point format.
// It can be decoded from configuration files and turned into a Format with NewFormat.
type Layout struct {
	Name         string `yaml:"name" json:"name" mapstructure:"name"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	TotalBits    int    `yaml:"total_bits" json:"total_bits" mapstructure:"total_bits"`
	SignBits     int    `yaml:"sign_bits" json:"sign_bits" mapstructure:"sign_bits"`
	ExponentBits int    `yaml:"exponent_bits" json:"exponent_bits" mapstructure:"exponent_bits"`
	MantissaBits int    `yaml:"mantissa_bits" json:"mantissa_bits" mapstructure:"mantissa_bits"`
	// Bias is the exponent bias. If nil, the IEEE bias 2^(ExponentBits-1)-1 is used.
	Bias *int `yaml:"bias,omitempty" json:"bias,omitempty" mapstructure:"bias"`
}

// Format is a validated, immutable floating-point layout.
// The zero Format is not valid, use NewFormat or one of the catalog values.
type Format struct {
	name        string
	description string
	expBits     int
	mantBits    int
	bias        int
}

// NewFormat validates l and returns a format for it.
// Returns a *ConfigurationError if
//   - SignBits is not 1;
//   - ExponentBits or MantissaBits is less than 1;
//   - TotalBits is not the sum of sign, exponent and mantissa bits;
//   - TotalBits exceeds MaxWidth, or ExponentBits exceeds 30;
//   - |Bias| exceeds 2^29.
func NewFormat(l Layout) (Format, error) {
	fail := func(format string, args ...interface{}) (Format, error) {
		return Format{}, &ConfigurationError{Format: l.Name, Reason: fmt.Sprintf(format, args...)}
	}
	switch {
	case l.SignBits != signBits:
		return fail("sign_bits must be %d, got %d", signBits, l.SignBits)
	case l.ExponentBits < 1:
		return fail("exponent_bits must be positive, got %d", l.ExponentBits)
	case l.MantissaBits < 1:
		return fail("mantissa_bits must be positive, got %d", l.MantissaBits)
	case l.ExponentBits > maxExponentBits:
		return fail("exponent_bits must not exceed %d, got %d", maxExponentBits, l.ExponentBits)
	case l.TotalBits != l.SignBits+l.ExponentBits+l.MantissaBits:
		return fail("total_bits %d != %d+%d+%d", l.TotalBits, l.SignBits, l.ExponentBits, l.MantissaBits)
	case l.TotalBits > MaxWidth:
		return fail("total_bits must not exceed %d, got %d", MaxWidth, l.TotalBits)
	}
	bias := 1<<(l.ExponentBits-1) - 1
	if l.Bias != nil {
		bias = *l.Bias
	}
	if bias > maxBias || bias < -maxBias {
		return fail("bias %d is out of range", bias)
	}
	name := l.Name
	if name == "" {
		name = fmt.Sprintf("e%dm%d", l.ExponentBits, l.MantissaBits)
	}
	return Format{
		name:        name,
		description: l.Description,
		expBits:     l.ExponentBits,
		mantBits:    l.MantissaBits,
		bias:        bias,
	}, nil
}

// MustFormat is like NewFormat, but panics on errors.
func MustFormat(l Layout) Format {
	f, err := NewFormat(l)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Format) valid() bool {
	return f.expBits >= 1 && f.mantBits >= 1
}

// Name returns the short name of the format, like "fp16".
func (f Format) Name() string { return f.name }

// Description returns a human-readable description.
func (f Format) Description() string { return f.description }

// TotalBits returns the width of the format.
func (f Format) TotalBits() int { return signBits + f.expBits + f.mantBits }

// SignBits always returns 1.
func (f Format) SignBits() int { return signBits }

// ExponentBits returns the width of the exponent field.
func (f Format) ExponentBits() int { return f.expBits }

// MantissaBits returns the width of the mantissa field.
func (f Format) MantissaBits() int { return f.mantBits }

// Bias returns the exponent bias.
func (f Format) Bias() int { return f.bias }

// Layout returns the description f was made from, with an explicit bias.
func (f Format) Layout() Layout {
	bias := f.bias
	return Layout{
		Name:         f.name,
		Description:  f.description,
		TotalBits:    f.TotalBits(),
		SignBits:     signBits,
		ExponentBits: f.expBits,
		MantissaBits: f.mantBits,
		Bias:         &bias,
	}
}

// String returns a short description like "fp16 (E5M10, bias 15)".
func (f Format) String() string {
	return fmt.Sprintf("%s (E%dM%d, bias %d)", f.name, f.expBits, f.mantBits, f.bias)
}

// MaxValue returns the largest finite value of the format.
func (f Format) MaxValue() float64 {
	if f.expBits == 1 { // no normals, the exponent field is either 0 or all ones.
		return f.mustDecode(f.pack(false, 0, f.mantMask()))
	}
	return f.mustDecode(f.pack(false, f.expMask()-1, f.mantMask()))
}

// MinNormal returns the smallest positive normal value.
// Layouts with a single exponent bit have no normals, so +Inf is returned for them.
func (f Format) MinNormal() float64 {
	if f.expBits == 1 {
		return math.Inf(1)
	}
	return f.mustDecode(f.pack(false, 1, 0))
}

// SmallestPositive returns the smallest positive subnormal value.
func (f Format) SmallestPositive() float64 {
	return f.mustDecode(f.pack(false, 0, 1))
}

// DecimalDigits returns the number of decimal digits the format preserves.
func (f Format) DecimalDigits() int {
	return mu.DecimalDigits(f.mantBits + 1)
}

func (f Format) expMask() uint64 {
	return mu.Mask(f.expBits)
}

func (f Format) mantMask() uint64 {
	return mu.Mask(f.mantBits)
}

func (f Format) pack(neg bool, exp, mant uint64) Bits {
	v := exp<<f.mantBits | mant
	if neg {
		v |= 1 << (f.expBits + f.mantBits)
	}
	return Bits{v: v, width: uint8(f.TotalBits())}
}

func (f Format) split(b Bits) (neg bool, exp, mant uint64) {
	return b.v>>(f.expBits+f.mantBits)&1 == 1, b.v >> f.mantBits & f.expMask(), b.v & f.mantMask()
}

// check returns an error if b can't hold a value of f.
func (f Format) check(b Bits) error {
	if b.Len() != f.TotalBits() {
		return &MalformedInputError{
			Input:  b.String(),
			Reason: fmt.Sprintf("%s needs %d bits, got %d", f.name, f.TotalBits(), b.Len()),
		}
	}
	return nil
}

func (f Format) mustDecode(b Bits) float64 {
	v, err := Decode(b, f)
	if err != nil {
		panic(err) // should not normally happen
	}
	return v
}
