// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatconv

import (
	"encoding/json"
	"fmt"
)

func ExampleEncode() {
	b := Encode(3.14159, FP16)
	fmt.Printf("bits = %s, hex = %s\n", b, ToHex(b))

	v, err := Decode(b, FP16)
	if err != nil {
		panic(err)
	}
	fmt.Printf("stored value = %v\n", v)

	fields, err := Breakdown(b, FP16)
	if err != nil {
		panic(err)
	}
	data, err := json.Marshal(fields)
	if err != nil {
		panic(err)
	}
	fmt.Printf("fields: %s\n", string(data))

	// Output:
	// bits = 0100001001001000, hex = 4248
	// stored value = 3.140625
	// fields: {"sign":"0","exponent":"10000","mantissa":"1001001000","signValue":0,"exponentValue":16,"mantissaValue":584,"class":"normal"}
}

func ExampleNewFormat() {
	f, err := NewFormat(Layout{TotalBits: 8, SignBits: 1, ExponentBits: 3, MantissaBits: 4})
	if err != nil {
		panic(err)
	}
	b := Encode(0.1, f)
	v, err := Decode(b, f)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s: 0.1 is stored as %s = %v\n", f, b, v)

	_, err = NewFormat(Layout{Name: "broken", TotalBits: 8, SignBits: 1, ExponentBits: 3, MantissaBits: 3})
	fmt.Println(err)

	// Output:
	// e3m4 (E3M4, bias 3): 0.1 is stored as 00000110 = 0.09375
	// bad format configuration "broken": total_bits 8 != 1+3+3
}

func ExampleFromHex() {
	b, err := FromHex("0x7E00", 16)
	if err != nil {
		panic(err)
	}
	v, err := Decode(b, FP16)
	if err != nil {
		panic(err)
	}
	fmt.Println(b, v)

	_, err = FromHex("0x1FFFF", 16)
	fmt.Println(err)

	// Output:
	// 0111111000000000 NaN
	// malformed input "0x1FFFF": value needs 17 bits, but only 16 are available
}
