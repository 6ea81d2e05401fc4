// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v    float64
		f    Format
		bits string
	}{
		{1.5, FP32, "00111111110000000000000000000000"},
		{-2, FP32, "11000000000000000000000000000000"},
		{math.NaN(), FP32, "01111111110000000000000000000000"},
		{math.Copysign(math.NaN(), -1), FP32, "01111111110000000000000000000000"},

		{0, FP16, "0000000000000000"},
		{math.Copysign(0, -1), FP16, "1000000000000000"},
		{1, FP16, "0011110000000000"},
		{65504, FP16, "0111101111111111"},
		{math.NaN(), FP16, "0111111000000000"},
		{math.Inf(1), FP16, "0111110000000000"},
		{math.Inf(-1), FP16, "1111110000000000"},
		// the mantissa rounds up to 2.0, which carries into the exponent.
		{1.9999, FP16, "0100000000000000"},
		// the carry reaches the all-ones exponent, so the value saturates.
		{65520, FP16, "0111110000000000"},
		{1e10, FP16, "0111110000000000"},
		// ties are rounded away from zero.
		{1 + math.Ldexp(1, -11), FP16, "0011110000000001"},
		{math.Ldexp(1, -24), FP16, "0000000000000001"},
		{math.Ldexp(1, -25), FP16, "0000000000000001"},
		{math.Ldexp(1, -26), FP16, "0000000000000000"},
		{-math.Ldexp(1, -26), FP16, "1000000000000000"},
		// the largest subnormal rounds up to the smallest normal.
		{math.Ldexp(1-math.Ldexp(1, -12), -14), FP16, "0000010000000000"},
		{math.Ldexp(1023, -24), FP16, "0000001111111111"},

		{1, BF16, "0011111110000000"},
		{-3.140625, BF16, "1100000001001001"},

		{240, FP8E4M3, "01110111"},
		{248, FP8E4M3, "01111000"},
		{1e10, FP8E4M3, "01111000"},
		{-1e10, FP8E4M3, "11111000"},
		{0.001953125, FP8E4M3, "00000001"},
		{math.NaN(), FP8E4M3, "01111100"},

		{0.5, NVFP4E2M1, "0001"},
		{1, NVFP4E2M1, "0010"},
		{1.5, NVFP4E2M1, "0011"},
		{2, NVFP4E2M1, "0100"},
		{2.5, NVFP4E2M1, "0101"},
		{3, NVFP4E2M1, "0101"},
		{4, NVFP4E2M1, "0110"},
		{-6, NVFP4E2M1, "1110"},
		{0.25, NVFP4E2M1, "0001"},
		{0.2, NVFP4E2M1, "0000"},
		{-0.75, NVFP4E2M1, "1010"},
		{math.NaN(), NVFP4E2M1, "0111"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			b := Encode(test.v, test.f)
			a.Equal(test.f.TotalBits(), b.Len())
			a.Equal(test.bits, b.String(), "%v in %v", test.v, test.f)
		})
	}
}

func TestEncodeMatchesFloat32(t *testing.T) {
	a := assert.New(t)
	// none of the values is a tie, so both rounding rules agree.
	values := []float64{
		0.1, -0.1, 3.14159, 1e6, -1e-6, 2.0 / 3, 123456.789,
		1e-40, 1e-45, 3.4e38, 1e39, -1e39,
		math.MaxFloat32, math.SmallestNonzeroFloat32,
	}
	for i, v := range values {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(uint64(math.Float32bits(float32(v))), Encode(v, FP32).Uint64(), "%v", v)
			a.Equal(Encode(v, FP32), EncodeFloat(float32(v), FP32))
		})
	}
}

func TestEncodeTieDiffersFromNearestEven(t *testing.T) {
	a := assert.New(t)
	v := 1 + math.Ldexp(1, -24)
	a.Equal(uint64(0x3F800000), uint64(math.Float32bits(float32(v))))
	a.Equal(uint64(0x3F800001), Encode(v, FP32).Uint64())
}

func TestEncodeFP64IsExact(t *testing.T) {
	a := assert.New(t)
	values := []float64{
		0, math.Copysign(0, -1), 1, -1, 0.1, -0.1, math.Pi, math.E, 1e308, -1e-310,
		math.MaxFloat64, -math.MaxFloat64,
		math.SmallestNonzeroFloat64,
		math.Ldexp(1, -1022),
		math.Nextafter(math.Ldexp(1, -1022), 0),
		math.Inf(1), math.Inf(-1),
	}
	for i, v := range values {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(math.Float64bits(v), Encode(v, FP64).Uint64(), "%v", v)
		})
	}
	a.Equal(uint64(0x7FF8000000000000), Encode(math.NaN(), FP64).Uint64())
}

func TestEncodeSingleExponentBit(t *testing.T) {
	a := assert.New(t)
	f := MustFormat(Layout{TotalBits: 4, SignBits: 1, ExponentBits: 1, MantissaBits: 2})
	a.Equal("0011", Encode(1.5, f).String())
	a.Equal("0100", Encode(1.75, f).String())
	a.Equal("1100", Encode(-100, f).String())
	a.Equal("0110", Encode(math.NaN(), f).String())
}

func TestEncodeWideExponent(t *testing.T) {
	a := assert.New(t)
	f := MustFormat(Layout{TotalBits: 32, SignBits: 1, ExponentBits: 30, MantissaBits: 1})
	a.Equal(1<<29-1, f.Bias())
	a.Equal("00"+strings.Repeat("1", 29)+"0", Encode(1, f).String())
	for _, v := range []float64{1, -0.75, 3, math.SmallestNonzeroFloat64, math.Ldexp(1, 1000)} {
		got, err := Decode(Encode(v, f), f)
		if a.NoError(err) {
			a.Equal(v, got)
		}
	}
}

func TestEncodeInvalidFormat(t *testing.T) {
	a := assert.New(t)
	for _, v := range []float64{math.NaN(), 0, 1} {
		a.PanicsWithValue("floatconv: encoding with an invalid format", func() {
			Encode(v, Format{})
		})
	}
}

func BenchmarkEncodeFP16(b *testing.B) {
	var dummy uint64
	for i := 0; i < b.N; i++ {
		dummy += Encode(float64(i)*0.001, FP16).Uint64()
	}
	// this metric is just to prevent unwanted optimisations in calculations of `dummy.`
	b.ReportMetric(float64(dummy), "dummy_metric")
}

func BenchmarkFloat32Conversion(b *testing.B) {
	var dummy uint64
	for i := 0; i < b.N; i++ {
		dummy += uint64(math.Float32bits(float32(float64(i) * 0.001)))
	}
	// this metric is just to prevent unwanted optimisations in calculations of `dummy.`
	b.ReportMetric(float64(dummy), "dummy_metric")
}
