package protocol

import (
	"fmt"
	"unicode/utf8"
)

// Response body layout.
const (
	// responsePrefixSize is the flags byte plus the status byte.
	responsePrefixSize = 2

	// lastPacketFlag marks the final packet of a response in byte 0.
	lastPacketFlag = 0x80

	// statusNibbleMask selects the status some servers carry in byte 0.
	statusNibbleMask = 0x0F
)

// ResponseBody is one packet of a server response.
type ResponseBody struct {
	LastPacket bool
	Status     Status
	Data       []byte
}

// DecodeResponseBody decodes a response body.
//
// Wire format:
//
//	Byte 0:   bit 7 last packet, bits 0-3 status (some servers)
//	Byte 1:   status
//	Byte 2+:  UTF-8 message
//
// The status is read from byte 1. When byte 1 is zero the low nibble of
// byte 0 is used instead, so both server variants decode the same.
func DecodeResponseBody(b []byte) (ResponseBody, error) {
	if len(b) < responsePrefixSize {
		return ResponseBody{}, fmt.Errorf("%w: response body needs %d bytes, got %d", ErrFrameTooShort, responsePrefixSize, len(b))
	}

	code := b[1]
	if code == 0 {
		code = b[0] & statusNibbleMask
	}
	status, err := ParseStatus(code)
	if err != nil {
		return ResponseBody{}, err
	}

	return ResponseBody{
		LastPacket: b[0]&lastPacketFlag != 0,
		Status:     status,
		Data:       b[responsePrefixSize:],
	}, nil
}

// Message returns Data as a string. It fails with ErrInvalidMessage when
// Data is not valid UTF-8.
func (r ResponseBody) Message() (string, error) {
	if !utf8.Valid(r.Data) {
		return "", fmt.Errorf("%w: % X", ErrInvalidMessage, r.Data)
	}
	return string(r.Data), nil
}

// Encode returns the wire form [flags|status, status, data...].
func (r ResponseBody) Encode() []byte {
	b := make([]byte, responsePrefixSize+len(r.Data))
	b[0] = uint8(r.Status) & statusNibbleMask
	if r.LastPacket {
		b[0] |= lastPacketFlag
	}
	b[1] = uint8(r.Status)
	copy(b[responsePrefixSize:], r.Data)
	return b
}

// BuildResponse builds a complete response frame.
func BuildResponse(action Action, body ResponseBody) ([]byte, error) {
	if action.IsRequest() {
		return nil, fmt.Errorf("%w: %s is not a response", ErrUnknownAction, action)
	}
	return BuildFrame(action, body.Encode())
}
