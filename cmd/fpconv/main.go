// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package main provides fpconv, a command line converter between real numbers
// and the bit patterns of binary floating-point formats.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
