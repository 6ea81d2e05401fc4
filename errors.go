package floatconv

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("bad format configuration")
	// ErrMalformedInput is matched by every *MalformedInputError.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownFormat is returned by Lookup for names that are not in the catalog.
	ErrUnknownFormat = errors.New("unknown format")
)

// ConfigurationError describes a layout that can't form a Format.
type ConfigurationError struct {
	Format string
	Reason string
}

func (ce *ConfigurationError) Error() string {
	if ce.Format == "" {
		return ErrConfiguration.Error() + ": " + ce.Reason
	}
	return fmt.Sprintf("%v %q: %s", ErrConfiguration, ce.Format, ce.Reason)
}

// Unwrap makes errors.Is(err, ErrConfiguration) work.
func (ce *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// MalformedInputError is returned for bit and hex strings that can't be used.
// Pos is the 1-based position of the offending symbol,
// or 0 if the input is wrong as a whole, like a bit string of a wrong length.
type MalformedInputError struct {
	Input  string
	Pos    int
	Reason string
}

func newPosError(input, reason string, pos int) *MalformedInputError {
	return &MalformedInputError{Input: input, Reason: reason, Pos: pos}
}

func (me *MalformedInputError) Error() string {
	if me.Pos > 0 {
		return fmt.Sprintf("%v %q: %s at pos %d", ErrMalformedInput, me.Input, me.Reason, me.Pos)
	}
	return fmt.Sprintf("%v %q: %s", ErrMalformedInput, me.Input, me.Reason)
}

// Unwrap makes errors.Is(err, ErrMalformedInput) work.
func (me *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
