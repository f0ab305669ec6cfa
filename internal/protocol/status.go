package protocol

import "fmt"

// Status is the outcome a server reports for a request.
type Status uint8

// KNX Link response statuses.
const (
	StatusSuccess                  Status = 0x00
	StatusError                    Status = 0x01
	StatusErrorRequest             Status = 0x02
	StatusErrorTimeout             Status = 0x03
	StatusErrorGroupAddress        Status = 0x04
	StatusErrorDataPointType       Status = 0x05
	StatusErrorClientNotAuthorized Status = 0x06
)

// ParseStatus maps a wire code to a Status.
func ParseStatus(code uint8) (Status, error) {
	s := Status(code)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownStatus, code)
	}
	return s, nil
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s <= StatusErrorClientNotAuthorized
}

// IsSuccess reports whether s is StatusSuccess.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	case StatusErrorRequest:
		return "ERROR_REQUEST"
	case StatusErrorTimeout:
		return "ERROR_TIMEOUT"
	case StatusErrorGroupAddress:
		return "ERROR_GROUP_ADDRESS"
	case StatusErrorDataPointType:
		return "ERROR_DATA_POINT_TYPE"
	case StatusErrorClientNotAuthorized:
		return "ERROR_CLIENT_NOT_AUTHORIZED"
	default:
		return fmt.Sprintf("Status(0x%02X)", uint8(s))
	}
}
