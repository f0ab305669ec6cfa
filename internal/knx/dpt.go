package knx

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Datapoint notation prefixes, matched case-insensitively.
const (
	dptPrefix  = "dpt-"
	dpstPrefix = "dpst-"

	// datapointIDSize is the number of bytes of an encoded datapoint type.
	datapointIDSize = 4
)

// DatapointID identifies a KNX Datapoint Type as a (type, subtype) pair.
//
// Subtype 0 means "no subtype". Four notations are accepted:
//
//	"9.001"     type 9, subtype 1
//	"9"         type 9
//	"dpt-9"     type 9
//	"dpst-9-1"  type 9, subtype 1
type DatapointID struct {
	Type    uint16
	Subtype uint16
}

// ParseDatapointID parses a datapoint type identifier.
//
// The notation is chosen by cheap structural checks, in this order:
//  1. contains "." → "#.#"
//  2. starts with "dpt-" → "dpt-#"
//  3. starts with "dpst-" → "dpst-#-#"
//  4. only ASCII digits → "#"
//
// Prefixes are case-insensitive. Each number must fit 16 bits.
func ParseDatapointID(s string) (DatapointID, error) {
	lower := strings.ToLower(s)

	switch {
	case strings.Contains(lower, "."):
		mainStr, subStr, _ := strings.Cut(lower, ".")
		return parseDatapointPair(s, mainStr, subStr, "#.#")
	case strings.HasPrefix(lower, dptPrefix):
		mainStr := strings.TrimPrefix(lower, dptPrefix)
		if !isDigits(mainStr) {
			return DatapointID{}, fmt.Errorf("%w: wrong format %q, expected dpt-#", ErrInvalidDPT, s)
		}
		main, err := parseDatapointField(mainStr, ErrDPTMainOverflow)
		if err != nil {
			return DatapointID{}, err
		}
		return DatapointID{Type: main}, nil
	case strings.HasPrefix(lower, dpstPrefix):
		mainStr, subStr, ok := strings.Cut(strings.TrimPrefix(lower, dpstPrefix), "-")
		if !ok {
			return DatapointID{}, fmt.Errorf("%w: wrong format %q, expected dpst-#-#", ErrInvalidDPT, s)
		}
		return parseDatapointPair(s, mainStr, subStr, "dpst-#-#")
	case isDigits(lower):
		main, err := parseDatapointField(lower, ErrDPTMainOverflow)
		if err != nil {
			return DatapointID{}, err
		}
		return DatapointID{Type: main}, nil
	default:
		return DatapointID{}, fmt.Errorf("%w: wrong format %q, expected #, #.#, dpt-# or dpst-#-#", ErrInvalidDPT, s)
	}
}

// parseDatapointPair parses the two numeric halves of "#.#" or "dpst-#-#".
func parseDatapointPair(s, mainStr, subStr, pattern string) (DatapointID, error) {
	if !isDigits(mainStr) || !isDigits(subStr) {
		return DatapointID{}, fmt.Errorf("%w: wrong format %q, expected %s", ErrInvalidDPT, s, pattern)
	}

	main, err := parseDatapointField(mainStr, ErrDPTMainOverflow)
	if err != nil {
		return DatapointID{}, err
	}
	sub, err := parseDatapointField(subStr, ErrDPTSubOverflow)
	if err != nil {
		return DatapointID{}, err
	}
	return DatapointID{Type: main, Subtype: sub}, nil
}

// parseDatapointField parses one all-digit field into 16 bits.
func parseDatapointField(s string, overflow error) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: must be 0-65535, got %q", overflow, s)
	}
	return uint16(v), nil
}

// isDigits reports whether s is non-empty and made of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Bytes returns the 4-byte wire form: big-endian type, then big-endian subtype.
func (d DatapointID) Bytes() [4]byte {
	var b [datapointIDSize]byte
	binary.BigEndian.PutUint16(b[0:2], d.Type)
	binary.BigEndian.PutUint16(b[2:4], d.Subtype)
	return b
}

// DecodeDatapointID decodes the 4-byte wire form.
func DecodeDatapointID(b []byte) (DatapointID, error) {
	if len(b) != datapointIDSize {
		return DatapointID{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidDPT, datapointIDSize, len(b))
	}
	return DatapointID{
		Type:    binary.BigEndian.Uint16(b[0:2]),
		Subtype: binary.BigEndian.Uint16(b[2:4]),
	}, nil
}

// String renders "dpt-T" when there is no subtype and "dpst-T-S" otherwise.
func (d DatapointID) String() string {
	if d.Subtype == 0 {
		return fmt.Sprintf("dpt-%d", d.Type)
	}
	return fmt.Sprintf("dpst-%d-%d", d.Type, d.Subtype)
}
