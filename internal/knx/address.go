package knx

import (
	"encoding/binary"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Level identifies the textual notation a GroupAddress was created with.
type Level uint8

// Supported group address notations.
const (
	// LevelFree is the single-number notation, e.g. "4711".
	LevelFree Level = iota + 1

	// LevelTwo is the main/sub notation, e.g. "20/1223".
	LevelTwo

	// LevelThree is the main/middle/sub notation, e.g. "1/2/3".
	LevelThree
)

// String returns the name of the notation.
func (l Level) String() string {
	switch l {
	case LevelFree:
		return "free-level"
	case LevelTwo:
		return "two-level"
	case LevelThree:
		return "three-level"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// Group address limits per KNX specification.
const (
	maxMain      = 31
	maxMiddle    = 7
	maxSubThree  = 255
	maxSubTwo    = 2047
	maxFreeLevel = 65535

	// Bit layout: MMMM MSSS SSSS SSSS.
	gaMainShift   = 11
	gaMiddleShift = 8
	gaMainMask    = 0x1F  // 5 bits
	gaMiddleMask  = 0x07  // 3 bits
	gaSubMask     = 0xFF  // 8 bits
	gaSubTwoMask  = 0x7FF // 11 bits

	// groupAddressSize is the number of bytes of an encoded group address.
	groupAddressSize = 2
)

// GroupAddress is a 16-bit KNX group address.
//
// The raw value is always stored canonically; the level only decides how the
// address is rendered by String. Three notations map onto the same 16 bits:
//
//	Free:   4711                 (1-65535)
//	Two:    main/sub             (main 0-31, sub 0-2047)
//	Three:  main/middle/sub      (main 0-31, middle 0-7, sub 0-255)
//
// The all-zero address is reserved and never constructed.
type GroupAddress struct {
	raw   uint16
	level Level
}

// ParseGroupAddress parses a group address in any of the three notations.
//
// The notation is selected by the number of "/" separators: two separators
// select the three-level notation, one the two-level notation and none the
// free-level notation.
//
// Example:
//
//	ga, err := knx.ParseGroupAddress("1/2/3")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("% X\n", ga.Bytes()) // 0A 03
func ParseGroupAddress(s string) (GroupAddress, error) {
	if s == "" {
		return GroupAddress{}, fmt.Errorf("%w: empty", ErrInvalidGroupAddress)
	}

	switch strings.Count(s, "/") {
	case 2: //nolint:mnd // separators of main/middle/sub
		return parseThreeLevel(s)
	case 1:
		return parseTwoLevel(s)
	case 0:
		return parseFreeLevel(s)
	default:
		return GroupAddress{}, fmt.Errorf("%w: unsupported format %q, expected #/#/#, #/# or #", ErrInvalidGroupAddress, s)
	}
}

func parseThreeLevel(s string) (GroupAddress, error) {
	parts := strings.Split(s, "/")

	main, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || main > maxMain {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %q", ErrMainOverflow, maxMain, parts[0])
	}

	middle, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || middle > maxMiddle {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %q", ErrMiddleOverflow, maxMiddle, parts[1])
	}

	sub, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %q", ErrSubOverflow, maxSubThree, parts[2])
	}

	return NewThreeLevel(uint8(main), uint8(middle), uint8(sub))
}

func parseTwoLevel(s string) (GroupAddress, error) {
	mainStr, subStr, _ := strings.Cut(s, "/")

	main, err := strconv.ParseUint(mainStr, 10, 8)
	if err != nil || main > maxMain {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %q", ErrMainOverflow, maxMain, mainStr)
	}

	sub, err := strconv.ParseUint(subStr, 10, 16)
	if err != nil || sub > maxSubTwo {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %q", ErrSubOverflow, maxSubTwo, subStr)
	}

	return NewTwoLevel(uint8(main), uint16(sub))
}

func parseFreeLevel(s string) (GroupAddress, error) {
	value, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return GroupAddress{}, fmt.Errorf("%w: must be 1-%d, got %q", ErrSubOverflow, maxFreeLevel, s)
	}
	return NewFreeLevel(uint16(value))
}

// NewFreeLevel creates a group address from its 16-bit value.
func NewFreeLevel(address uint16) (GroupAddress, error) {
	if address == 0 {
		return GroupAddress{}, fmt.Errorf("%w: 0", ErrReservedAddress)
	}
	return GroupAddress{raw: address, level: LevelFree}, nil
}

// NewTwoLevel creates a group address from main (0-31) and sub (0-2047).
func NewTwoLevel(main uint8, sub uint16) (GroupAddress, error) {
	if main > maxMain {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %d", ErrMainOverflow, maxMain, main)
	}
	if sub > maxSubTwo {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %d", ErrSubOverflow, maxSubTwo, sub)
	}
	if main == 0 && sub == 0 {
		return GroupAddress{}, fmt.Errorf("%w: 0/0", ErrReservedAddress)
	}
	return GroupAddress{
		raw:   uint16(main)<<gaMainShift | sub,
		level: LevelTwo,
	}, nil
}

// NewThreeLevel creates a group address from main (0-31), middle (0-7) and
// sub (0-255).
func NewThreeLevel(main, middle, sub uint8) (GroupAddress, error) {
	if main > maxMain {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %d", ErrMainOverflow, maxMain, main)
	}
	if middle > maxMiddle {
		return GroupAddress{}, fmt.Errorf("%w: must be 0-%d, got %d", ErrMiddleOverflow, maxMiddle, middle)
	}
	if main == 0 && middle == 0 && sub == 0 {
		return GroupAddress{}, fmt.Errorf("%w: 0/0/0", ErrReservedAddress)
	}
	return GroupAddress{
		raw:   uint16(main)<<gaMainShift | uint16(middle)<<gaMiddleShift | uint16(sub),
		level: LevelThree,
	}, nil
}

// DecodeGroupAddress decodes the 2-byte wire form of a group address and
// tags it with the notation it should be rendered in.
//
// The raw value [0x00, 0x00] is rejected for every level.
func DecodeGroupAddress(b []byte, level Level) (GroupAddress, error) {
	if len(b) != groupAddressSize {
		return GroupAddress{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidGroupAddress, groupAddressSize, len(b))
	}
	switch level {
	case LevelFree, LevelTwo, LevelThree:
	default:
		return GroupAddress{}, fmt.Errorf("%w: unknown level %d", ErrInvalidGroupAddress, level)
	}

	raw := binary.BigEndian.Uint16(b)
	if raw == 0 {
		return GroupAddress{}, fmt.Errorf("%w: raw bytes [0x00, 0x00]", ErrReservedAddress)
	}
	return GroupAddress{raw: raw, level: level}, nil
}

// Bytes returns the 2-byte wire form, main bits first.
func (ga GroupAddress) Bytes() [2]byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], ga.raw)
	return b
}

// Uint16 returns the canonical 16-bit value.
func (ga GroupAddress) Uint16() uint16 {
	return ga.raw
}

// Level returns the notation the address was constructed with.
func (ga GroupAddress) Level() Level {
	return ga.level
}

// Main returns the 5-bit main group.
func (ga GroupAddress) Main() uint8 {
	return uint8((ga.raw >> gaMainShift) & gaMainMask) //nolint:gosec // masked to 5 bits
}

// Middle returns the 3-bit middle group of the three-level notation.
func (ga GroupAddress) Middle() uint8 {
	return uint8((ga.raw >> gaMiddleShift) & gaMiddleMask) //nolint:gosec // masked to 3 bits
}

// Sub returns the sub group of the address's own notation: 8 bits for
// three-level, 11 bits for two-level and the whole value for free-level.
func (ga GroupAddress) Sub() uint16 {
	switch ga.level {
	case LevelTwo:
		return ga.raw & gaSubTwoMask
	case LevelFree:
		return ga.raw
	default:
		return ga.raw & gaSubMask
	}
}

// IsZero reports whether ga is the zero value, which never names a valid address.
func (ga GroupAddress) IsZero() bool {
	return ga.raw == 0
}

// String renders the address in the notation it was constructed with.
func (ga GroupAddress) String() string {
	return ga.Format(ga.level)
}

// Format renders the address in the given notation.
//
// Example: the address 0x0A03 formats as "1/2/3", "1/515" or "2563".
func (ga GroupAddress) Format(level Level) string {
	switch level {
	case LevelFree:
		return strconv.FormatUint(uint64(ga.raw), 10)
	case LevelTwo:
		return fmt.Sprintf("%d/%d", ga.Main(), ga.raw&gaSubTwoMask)
	default:
		return fmt.Sprintf("%d/%d/%d", ga.Main(), ga.Middle(), ga.raw&gaSubMask)
	}
}

// URLEncode returns the address as a URL path segment.
//
// This is used in MQTT topics where "/" is a level separator.
//
// Example: "1/2/3" → "1%2F2%2F3"
func (ga GroupAddress) URLEncode() string {
	return url.PathEscape(ga.String())
}
