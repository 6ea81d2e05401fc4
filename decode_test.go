// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	a := assert.New(t)
	checks := map[string]float64{
		"0 00000 000000":     0.0,
		"0 00000 0000000000": 0.0,
		"0 00000 0000000001": 5.960464477539063e-08,
		"0 00000 0000001000": 4.76837158203125e-07,
		"0 00000 000101":     4.76837158203125e-06,
		"0 00000 0001010000": 4.76837158203125e-06,
		"0 00000 0001010011": 4.947185516357422e-06,
		"0 00000 110100":     4.9591064453125e-05,
		"0 00000 1101000000": 4.9591064453125e-05,
		"0 00000 1101000110": 4.9948692321777344e-05,
		"0 00000 111111":     6.008148193359375e-05,
		"0 00000 1111111111": 6.097555160522461e-05,
		"0 00001 000000":     6.103515625e-05,
		"0 00001 0000000000": 6.103515625e-05,
		"0 00001 101000":     9.918212890625e-05,
		"0 00001 1010001101": 9.995698928833008e-05,
		"0 01101 010101":     0.33203125,
		"0 01101 0101010101": 0.333251953125,
		"0 01111 000000":     1.0,
		"0 01111 0000000000": 1.0,
		"0 01111 0000000001": 1.0009765625,
		"0 01111 000001":     1.015625,
		"0 10000 000000":     2.0,
		"0 10000 1000000000": 3.0,
		"0 10001 010000":     5.0,
		"0 10110 111110":     252.0,
		"0 10110 111111":     254.0,
		"0 10111 000000":     256.0,
		"0 11110 100001":     49664,
		"0 11110 1000011010": 49984,
		"0 11110 111111":     65024,
		"0 11110 1111111111": 65504,
		"0 11111 000000":     math.Inf(+1),
		"0 11111 0000000000": math.Inf(+1),
		"1 01101 0101010101": -0.333251953125,
		"1 01111 0000000000": -1.0,
		"1 10000 1000000000": -3.0,
		"1 10001 0100000000": -5.0,
		"1 11111 0000000000": math.Inf(-1),
		"0 00000000000 0000000000000000000000000000000000000000000000000001": 4.94065645841246544176568792868e-324,
		"0 01111111111 0000000000000000000000000000000000000000000000000000": 1.0,
		"0 11111111111 0000000000000000000000000000000000000000000000000000": math.Inf(+1),
		"1 01111111111 0000000000000000000000000000000000000000000000000000": -1.0,
		"0 10000000 01000000000000000000000":                                  2.5,
		"1 0000 001":                                                          -0.001953125,
		"0 1110 111":                                                          240,
		"0 00 1":                                                              0.5,
		"1 10 1":                                                              -3,
	}
	for bits, expected := range checks {
		t.Run(bits, func(t *testing.T) {
			parts := strings.Split(bits, " ")
			require.Len(t, parts, 3)
			f := MustFormat(Layout{
				TotalBits:    len(parts[0]) + len(parts[1]) + len(parts[2]),
				SignBits:     len(parts[0]),
				ExponentBits: len(parts[1]),
				MantissaBits: len(parts[2]),
			})
			b := MustParseBits(bits)
			v, err := Decode(b, f)
			if a.NoError(err) {
				a.Equal(expected, v)
			}
			// every value above is exact, so it must encode back to the same pattern.
			a.Equal(b, Encode(expected, f))

			v, err = DecodeString(bits, f)
			if a.NoError(err) {
				a.Equal(expected, v)
			}
		})
	}
}

func TestDecodeSpecialValues(t *testing.T) {
	a := assert.New(t)

	v, err := DecodeString("1 00000 0000000000", FP16)
	require.NoError(t, err)
	a.Equal(0.0, v)
	a.True(math.Signbit(v))

	for _, s := range []string{"0 11111 0000000001", "1 11111 1000000000", "1 11111 1111111111"} {
		v, err = DecodeString(s, FP16)
		if a.NoError(err) {
			a.True(math.IsNaN(v), s)
		}
	}

	v, err = DecodeString("0111", NVFP4E2M1)
	if a.NoError(err) {
		a.True(math.IsNaN(v))
	}
}

func TestDecodeCustomBias(t *testing.T) {
	a := assert.New(t)
	f := MustFormat(Layout{Name: "shifted", TotalBits: 8, SignBits: 1, ExponentBits: 4, MantissaBits: 3, Bias: intPtr(-2)})
	v, err := DecodeString("0 0001 000", f)
	if a.NoError(err) {
		a.Equal(8.0, v)
	}
	v, err = DecodeString("0 0000 100", f)
	if a.NoError(err) {
		a.Equal(4.0, v)
	}
	a.Equal("00001000", Encode(8, f).String())
}

func TestDecodeErrors(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s   string
		f   Format
		err string
	}{
		{"0101", FP16, `malformed input "0101": fp16 needs 16 bits, got 4`},
		{"0 01111 00000000001", FP16, `malformed input "00111100000000001": fp16 needs 16 bits, got 17`},
		{"0 01111 00000000x0", FP16, `malformed input "0 01111 00000000x0": unexpected symbol 'x' at pos 17`},
		{"", FP32, `malformed input "": empty input`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			_, err := DecodeString(test.s, test.f)
			a.EqualError(err, test.err)
			a.True(errors.Is(err, ErrMalformedInput))
			var me *MalformedInputError
			a.True(errors.As(err, &me))
		})
	}

	_, err := Decode(Bits{}, FP8E4M3)
	a.True(errors.Is(err, ErrMalformedInput))
}

func BenchmarkDecodeFP16(b *testing.B) {
	var dummy float64
	for i := 0; i < b.N; i++ {
		v, _ := Decode(NewBits(uint64(i), 16), FP16)
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			dummy += v
		}
	}
	// this metric is just to prevent unwanted optimisations in calculations of `dummy.`
	b.ReportMetric(dummy, "dummy_metric")
}
