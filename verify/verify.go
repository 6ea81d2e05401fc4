// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package verify checks that values survive the encode, decode, hex, and breakdown
// chain of floatconv with no more loss than the target format allows.
package verify

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/avdva/floatconv"
	mu "github.com/avdva/floatconv/internal/mathutil"
)

// maxExhaustiveBits is the widest format Exhaustive enumerates.
const maxExhaustiveBits = 16

// Status is the outcome of a single check.
type Status int

const (
	// Exact means the value was stored without loss.
	Exact Status = iota
	// Rounded means the value lost at most half a unit in the last place.
	Rounded
	// Overflow means a value above the format's range became an infinity.
	Overflow
	// Underflow means a value below half of the smallest subnormal became a zero.
	Underflow
	// Failed means the chain produced a wrong result.
	Failed
)

var statusNames = [...]string{"exact", "rounded", "overflow", "underflow", "failed"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Case is a value to be stored in a format.
type Case struct {
	Value  float64
	Format floatconv.Format
}

// Result is the outcome of Check.
type Result struct {
	Case
	Bits    floatconv.Bits
	Hex     string
	Decoded float64
	Status  Status
	// Reason explains a Failed status.
	Reason string
}

func (r Result) String() string {
	s := fmt.Sprintf("%s: %s -> %s (%s) -> %s: %s", r.Format.Name(), formatFloat(r.Value), r.Bits, r.Hex, formatFloat(r.Decoded), r.Status)
	if r.Reason != "" {
		s += " (" + r.Reason + ")"
	}
	return s
}

// Samples returns a fixed set of values covering signed zeros, small integers,
// common fractions, powers of ten, infinities, and a NaN.
func Samples() []float64 {
	return []float64{
		0, math.Copysign(0, -1), 1, -1, 2, -2,
		0.5, -0.5, 0.25, -0.25,
		3.14159, -3.14159,
		1.5, -1.5,
		10, -10,
		100, -100,
		0.1, -0.1,
		0.01, -0.01,
		1e6, -1e6,
		1e-6, -1e-6,
		math.Inf(1), math.Inf(-1),
		math.NaN(),
	}
}

// Exhaustive returns the decoded value of every bit pattern of f.
// Returns nil for formats wider than 16 bits.
func Exhaustive(f floatconv.Format) []float64 {
	if f.TotalBits() > maxExhaustiveBits {
		return nil
	}
	result := make([]float64, 0, 1<<f.TotalBits())
	for p := uint64(0); p < 1<<f.TotalBits(); p++ {
		v, err := floatconv.Decode(floatconv.NewBits(p, f.TotalBits()), f)
		if err != nil {
			panic(err) // should not normally happen
		}
		result = append(result, v)
	}
	return result
}

// Random returns n pseudo-random values with magnitudes from 2^-40 to 2^41.
// The same seed always produces the same values.
func Random(seed int64, n int) []float64 {
	r := rand.New(rand.NewSource(seed))
	result := make([]float64, n)
	for i := range result {
		v := math.Ldexp(1+r.Float64(), r.Intn(81)-40)
		if r.Intn(2) == 0 {
			v = -v
		}
		result[i] = v
	}
	return result
}

// Cases returns every combination of formats and values, grouped by format.
func Cases(formats []floatconv.Format, values []float64) []Case {
	result := make([]Case, 0, len(formats)*len(values))
	for _, f := range formats {
		for _, v := range values {
			result = append(result, Case{Value: v, Format: f})
		}
	}
	return result
}

// Check encodes c.Value, decodes it back, and checks the hex and breakdown forms of the bits.
func Check(c Case) Result {
	f := c.Format
	r := Result{Case: c, Bits: floatconv.Encode(c.Value, f)}
	r.Hex = floatconv.ToHex(r.Bits)
	fail := func(format string, args ...interface{}) Result {
		r.Status, r.Reason = Failed, fmt.Sprintf(format, args...)
		return r
	}
	var err error
	if r.Decoded, err = floatconv.Decode(r.Bits, f); err != nil {
		return fail("decode: %v", err)
	}
	back, err := floatconv.FromHex(r.Hex, r.Bits.Len())
	if err != nil {
		return fail("hex: %v", err)
	}
	if back != r.Bits {
		return fail("hex %s parsed as %s", r.Hex, back)
	}
	fields, err := floatconv.Breakdown(r.Bits, f)
	if err != nil {
		return fail("breakdown: %v", err)
	}
	if s := fields.Sign + fields.Exponent + fields.Mantissa; s != r.Bits.String() {
		return fail("breakdown fields %s do not form the pattern", s)
	}
	if cl := classOf(r.Decoded, f); cl != fields.Class {
		return fail("class %s, expected %s", fields.Class, cl)
	}
	r.Status, r.Reason = classify(c.Value, r.Decoded, f)
	return r
}

func classify(v, decoded float64, f floatconv.Format) (Status, string) {
	switch {
	case math.IsNaN(v):
		if math.IsNaN(decoded) {
			return Exact, ""
		}
		return Failed, "NaN was not preserved"
	case math.IsNaN(decoded):
		return Failed, "became NaN"
	case math.Signbit(v) != math.Signbit(decoded):
		return Failed, "sign was not preserved"
	case v == decoded:
		return Exact, ""
	case math.IsInf(v, 0):
		return Failed, "infinity was not preserved"
	case math.IsInf(decoded, 0):
		if math.Abs(v) > f.MaxValue() {
			return Overflow, ""
		}
		return Failed, "overflow within range"
	}
	abs, diff := math.Abs(v), math.Abs(decoded-v)
	if decoded == 0 {
		if abs < f.SmallestPositive()/2 {
			return Underflow, ""
		}
		return Failed, "underflow within range"
	}
	if halfULP := ulp(abs, f) / 2; diff > halfULP {
		return Failed, fmt.Sprintf("error %g exceeds %g", diff, halfULP)
	}
	return Rounded, ""
}

// ulp returns the distance between adjacent values of f near abs.
func ulp(abs float64, f floatconv.Format) float64 {
	if abs < f.MinNormal() {
		return f.SmallestPositive()
	}
	return math.Ldexp(1, mu.FloorLog2(abs)-f.MantissaBits())
}

func classOf(v float64, f floatconv.Format) floatconv.Class {
	switch {
	case math.IsNaN(v):
		return floatconv.NaN
	case math.IsInf(v, 0):
		return floatconv.Infinity
	case v == 0:
		return floatconv.Zero
	case math.Abs(v) < f.MinNormal():
		return floatconv.Subnormal
	default:
		return floatconv.Normal
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
