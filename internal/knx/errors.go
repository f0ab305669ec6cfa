package knx

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is wrapped by every field-overflow error below, so callers can
// tell a numeric range violation apart from a malformed notation.
var ErrOutOfRange = errors.New("knx: value out of range")

// Group address errors.
var (
	// ErrInvalidGroupAddress is returned when a group address string does not
	// match any supported notation, or when it names the reserved address 0.
	ErrInvalidGroupAddress = errors.New("knx: invalid group address")

	// ErrReservedAddress is returned for the all-zero address (0, 0/0, 0/0/0
	// or the raw bytes [0x00, 0x00]). It also matches ErrInvalidGroupAddress.
	ErrReservedAddress = fmt.Errorf("%w: address 0 is reserved", ErrInvalidGroupAddress)

	// ErrMainOverflow is returned when the main group is not a number in 0-31.
	ErrMainOverflow = fmt.Errorf("%w: main group", ErrOutOfRange)

	// ErrMiddleOverflow is returned when the middle group is not a number in 0-7.
	ErrMiddleOverflow = fmt.Errorf("%w: middle group", ErrOutOfRange)

	// ErrSubOverflow is returned when the sub group exceeds the width left by
	// the chosen notation (255, 2047 or 65535).
	ErrSubOverflow = fmt.Errorf("%w: sub group", ErrOutOfRange)
)

// Datapoint type errors.
var (
	// ErrInvalidDPT is returned when a datapoint type identifier does not
	// match the notation its prefix selects.
	ErrInvalidDPT = errors.New("knx: invalid datapoint type")

	// ErrDPTMainOverflow is returned when the main type does not fit 16 bits.
	ErrDPTMainOverflow = fmt.Errorf("%w: main datapoint type", ErrOutOfRange)

	// ErrDPTSubOverflow is returned when the subtype does not fit 16 bits.
	ErrDPTSubOverflow = fmt.Errorf("%w: sub datapoint type", ErrOutOfRange)
)
