package protocol

import "fmt"

// Frame layout constants.
const (
	// Version1 is the only protocol version this client speaks.
	Version1 uint8 = 0x01

	// HeaderSize is the fixed header length: version, action, body length.
	HeaderSize = 3

	// MaxBodySize is the largest body the one-byte length field can describe.
	MaxBodySize = 255

	// MaxFrameSize is HeaderSize plus MaxBodySize.
	MaxFrameSize = HeaderSize + MaxBodySize
)

// Header is the fixed 3-byte prefix of every frame.
type Header struct {
	Version uint8
	Action  Action
	Length  uint8
}

// BuildFrame prepends a version 1 header to body.
//
// Wire format:
//
//	Byte 0:   protocol version (0x01)
//	Byte 1:   action
//	Byte 2:   body length
//	Byte 3+:  body
func BuildFrame(action Action, body []byte) ([]byte, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownAction, uint8(action))
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: body is %d bytes, limit is %d", ErrFrameTooLarge, len(body), MaxBodySize)
	}

	frame := make([]byte, HeaderSize+len(body))
	frame[0] = Version1
	frame[1] = uint8(action)
	frame[2] = uint8(len(body)) //nolint:gosec // bounded by MaxBodySize above
	copy(frame[HeaderSize:], body)
	return frame, nil
}

// ParseHeader decodes the first three bytes of b.
//
// The version byte is returned as received; callers decide which versions
// they accept.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrFrameTooShort, HeaderSize, len(b))
	}
	action, err := ParseAction(b[1])
	if err != nil {
		return Header{}, err
	}
	return Header{
		Version: b[0],
		Action:  action,
		Length:  b[2],
	}, nil
}

// FrameSize returns the total number of bytes of the frame h describes.
func (h Header) FrameSize() int {
	return HeaderSize + int(h.Length)
}

// Body returns the body slice of frame as described by h.
func (h Header) Body(frame []byte) ([]byte, error) {
	if len(frame) < h.FrameSize() {
		return nil, fmt.Errorf("%w: body needs %d bytes, got %d", ErrFrameTooShort, h.Length, max(len(frame)-HeaderSize, 0))
	}
	return frame[HeaderSize:h.FrameSize()], nil
}
