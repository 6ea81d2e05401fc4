package floatconv

import (
	"fmt"
	"strings"
)

var (
	// FP32 is IEEE 754 single precision.
	FP32 = MustFormat(ieee("fp32", "32-bit IEEE 754 single precision", 8, 23, 127))
	// FP64 is IEEE 754 double precision.
	FP64 = MustFormat(ieee("fp64", "64-bit IEEE 754 double precision", 11, 52, 1023))
	// FP16 is IEEE 754 half precision.
	FP16 = MustFormat(ieee("fp16", "16-bit IEEE 754 half precision", 5, 10, 15))
	// BF16 is the 16-bit brain floating point, a truncated FP32.
	BF16 = MustFormat(ieee("bf16", "16-bit Google Brain floating point", 8, 7, 127))
	// FP8E4M3 is an 8-bit float with 4 exponent and 3 mantissa bits.
	// Unlike OCP E4M3, the all-ones exponent is reserved for infinities and NaNs.
	FP8E4M3 = MustFormat(ieee("fp8-e4m3", "8-bit floating point (4-bit exponent, 3-bit mantissa)", 4, 3, 7))
	// NVFP4E2M1 is a 4-bit float with 2 exponent and 1 mantissa bits.
	NVFP4E2M1 = MustFormat(ieee("nvfp4-e2m1", "4-bit NVIDIA floating point (2-bit exponent, 1-bit mantissa)", 2, 1, 1))

	catalog = []Format{FP32, FP64, FP16, BF16, FP8E4M3, NVFP4E2M1}

	aliases = map[string]Format{
		"fp32": FP32, "float32": FP32, "single": FP32,
		"fp64": FP64, "float64": FP64, "double": FP64,
		"fp16": FP16, "float16": FP16, "half": FP16,
		"bf16": BF16, "bfloat16": BF16,
		"fp8": FP8E4M3, "fp8-e4m3": FP8E4M3, "e4m3": FP8E4M3,
		"nvfp4": NVFP4E2M1, "nvfp4-e2m1": NVFP4E2M1, "e2m1": NVFP4E2M1,
	}
)

func ieee(name, description string, expBits, mantBits, bias int) Layout {
	return Layout{
		Name:         name,
		Description:  description,
		TotalBits:    signBits + expBits + mantBits,
		SignBits:     signBits,
		ExponentBits: expBits,
		MantissaBits: mantBits,
		Bias:         &bias,
	}
}

// Catalog returns the predefined formats: fp32, fp64, fp16, bf16, fp8-e4m3, nvfp4-e2m1.
func Catalog() []Format {
	result := make([]Format, len(catalog))
	copy(result, catalog)
	return result
}

// Lookup returns a predefined format by its name or a common alias, like "half" or "e4m3".
// Names are case-insensitive.
func Lookup(name string) (Format, error) {
	if f, found := aliases[strings.ToLower(strings.TrimSpace(name))]; found {
		return f, nil
	}
	return Format{}, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}
