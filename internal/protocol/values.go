package protocol

import (
	"bytes"
	"fmt"
	"strings"
)

// EncodeValues renders write values as quoted groups separated by a single
// space, e.g. ["Hello", "World"] → `"Hello" "World"`.
//
// Values are passed through byte for byte. A value containing a double quote
// is rejected with ErrInvalidValue. An empty list encodes to an empty slice.
func EncodeValues(values []string) ([]byte, error) {
	var buf bytes.Buffer
	for i, v := range values {
		if strings.ContainsRune(v, '"') {
			return nil, fmt.Errorf("%w: value %d (%q) contains a double quote", ErrInvalidValue, i+1, v)
		}
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte('"')
		buf.WriteString(v)
		buf.WriteByte('"')
	}
	return buf.Bytes(), nil
}

// DecodeValues splits an encoded value section back into its values.
func DecodeValues(b []byte) ([]string, error) {
	if len(b) == 0 {
		return nil, nil
	}

	var values []string
	rest := b
	for {
		if len(rest) < 2 || rest[0] != '"' { //nolint:mnd // opening and closing quote
			return nil, fmt.Errorf("%w: expected opening quote in %q", ErrInvalidValue, b)
		}
		end := bytes.IndexByte(rest[1:], '"')
		if end < 0 {
			return nil, fmt.Errorf("%w: missing closing quote in %q", ErrInvalidValue, b)
		}
		values = append(values, string(rest[1:1+end]))
		rest = rest[end+2:]
		if len(rest) == 0 {
			return values, nil
		}
		if rest[0] != ' ' {
			return nil, fmt.Errorf("%w: expected single space between values in %q", ErrInvalidValue, b)
		}
		rest = rest[1:]
	}
}
