package protocol

import "errors"

// Domain errors for the KNX Link frame codec.
var (
	// ErrFrameTooShort is returned when a header or body has fewer bytes
	// than its fixed layout requires.
	ErrFrameTooShort = errors.New("protocol: frame too short")

	// ErrFrameTooLarge is returned when a body does not fit the one-byte
	// length field.
	ErrFrameTooLarge = errors.New("protocol: frame too large")

	// ErrUnknownAction is returned for action codes outside 0-3.
	ErrUnknownAction = errors.New("protocol: unknown action")

	// ErrUnknownStatus is returned for status codes outside 0-6.
	ErrUnknownStatus = errors.New("protocol: unknown status")

	// ErrInvalidValue is returned when a write value contains a double quote,
	// which the quoted value encoding cannot carry.
	ErrInvalidValue = errors.New("protocol: invalid value")

	// ErrInvalidMessage is returned when a response message is not valid UTF-8.
	ErrInvalidMessage = errors.New("protocol: invalid message encoding")
)
