package nbt

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every error Decode returns.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError describes where a decode gave up.
// Offset is counted from the first byte passed to Decode.
type MalformedInputError struct {
	Offset int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at offset %d: %s", e.Offset, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedInput) hold.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
