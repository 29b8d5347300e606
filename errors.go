package orc

import (
	"errors"
	"fmt"
)

// The error kinds surfaced by the read path. Decode errors wrap one of these
// sentinels so callers can classify failures with errors.Is while the message
// carries the column or stream that produced them.
var (
	// ErrParse reports malformed stripe data: a missing required stream, a
	// truncated stream, an out of range dictionary entry, a negative length,
	// or an encoded value that violates the column's invariants.
	ErrParse = errors.New("orc: parse error")

	// ErrUnsupported reports a type or encoding combination the reader does
	// not handle.
	ErrUnsupported = errors.New("orc: unsupported feature")

	// ErrOverflow reports a value that cannot be represented in the read
	// type without losing information.
	ErrOverflow = errors.New("orc: value overflow")
)

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

func unsupportedErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}
