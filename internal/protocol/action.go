package protocol

import "fmt"

// Action is the second header byte and tells what a frame carries.
type Action uint8

// KNX Link actions.
const (
	// ActionReadRequest asks the server to read a group address.
	ActionReadRequest Action = 0x00

	// ActionWriteRequest asks the server to write values to a group address.
	ActionWriteRequest Action = 0x01

	// ActionReadResponse answers a read request.
	ActionReadResponse Action = 0x02

	// ActionWriteResponse answers a write request.
	ActionWriteResponse Action = 0x03
)

// ParseAction maps a wire code to an Action.
func ParseAction(code uint8) (Action, error) {
	a := Action(code)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownAction, code)
	}
	return a, nil
}

// Valid reports whether a is one of the four defined actions.
func (a Action) Valid() bool {
	return a <= ActionWriteResponse
}

// IsRequest reports whether a is sent by the client.
func (a Action) IsRequest() bool {
	return a == ActionReadRequest || a == ActionWriteRequest
}

// Response returns the response action that answers request a.
func (a Action) Response() Action {
	switch a {
	case ActionReadRequest:
		return ActionReadResponse
	case ActionWriteRequest:
		return ActionWriteResponse
	default:
		return a
	}
}

func (a Action) String() string {
	switch a {
	case ActionReadRequest:
		return "READ_REQUEST"
	case ActionWriteRequest:
		return "WRITE_REQUEST"
	case ActionReadResponse:
		return "READ_RESPONSE"
	case ActionWriteResponse:
		return "WRITE_RESPONSE"
	default:
		return fmt.Sprintf("Action(0x%02X)", uint8(a))
	}
}
