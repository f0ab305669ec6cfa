package protocol

import (
	"fmt"

	"github.com/nerrad567/knxlink/internal/knx"
)

// requestPrefixSize is the group address (2) plus datapoint type (4) that
// start every request body.
const requestPrefixSize = 6

// Request is a decoded client request.
type Request struct {
	Action       Action
	GroupAddress knx.GroupAddress
	Datapoint    knx.DatapointID
	Values       []string
}

// BuildReadRequest builds a complete read request frame.
//
// Body layout: group address (2 bytes) + datapoint type (4 bytes).
//
// Example:
//
//	frame, _ := protocol.BuildReadRequest("1/2/3", "4711.32109")
//	// 01 00 06 0A 03 12 67 7D 6D
func BuildReadRequest(ga, dpt string) ([]byte, error) {
	return BuildRequest(ActionReadRequest, ga, dpt, nil)
}

// BuildWriteRequest builds a complete write request frame.
//
// Body layout: group address (2 bytes) + datapoint type (4 bytes) + values
// as encoded by EncodeValues.
func BuildWriteRequest(ga, dpt string, values []string) ([]byte, error) {
	return BuildRequest(ActionWriteRequest, ga, dpt, values)
}

// BuildRequest builds a request frame for action. Values are ignored for
// read requests.
func BuildRequest(action Action, ga, dpt string, values []string) ([]byte, error) {
	req, err := ParseRequest(action, ga, dpt, values)
	if err != nil {
		return nil, err
	}
	return req.Encode()
}

// ParseRequest parses the textual group address and datapoint type of a
// request. Values are dropped for read requests.
func ParseRequest(action Action, gaText, dptText string, values []string) (Request, error) {
	if !action.IsRequest() {
		return Request{}, fmt.Errorf("%w: %s is not a request", ErrUnknownAction, action)
	}
	ga, err := knx.ParseGroupAddress(gaText)
	if err != nil {
		return Request{}, fmt.Errorf("group address %q: %w", gaText, err)
	}
	dpt, err := knx.ParseDatapointID(dptText)
	if err != nil {
		return Request{}, fmt.Errorf("datapoint type %q: %w", dptText, err)
	}

	req := Request{Action: action, GroupAddress: ga, Datapoint: dpt}
	if action == ActionWriteRequest {
		req.Values = values
	}
	return req, nil
}

// Encode builds the request frame.
func (r Request) Encode() ([]byte, error) {
	if !r.Action.IsRequest() {
		return nil, fmt.Errorf("%w: %s is not a request", ErrUnknownAction, r.Action)
	}

	gaBytes := r.GroupAddress.Bytes()
	dptBytes := r.Datapoint.Bytes()
	body := make([]byte, 0, requestPrefixSize)
	body = append(body, gaBytes[:]...)
	body = append(body, dptBytes[:]...)

	if r.Action == ActionWriteRequest {
		encoded, err := EncodeValues(r.Values)
		if err != nil {
			return nil, err
		}
		body = append(body, encoded...)
	}
	return BuildFrame(r.Action, body)
}

// DecodeRequest decodes a request frame. The group address is tagged with
// level for rendering.
func DecodeRequest(frame []byte, level knx.Level) (Request, error) {
	h, err := ParseHeader(frame)
	if err != nil {
		return Request{}, err
	}
	if !h.Action.IsRequest() {
		return Request{}, fmt.Errorf("%w: %s is not a request", ErrUnknownAction, h.Action)
	}
	body, err := h.Body(frame)
	if err != nil {
		return Request{}, err
	}
	if len(body) < requestPrefixSize {
		return Request{}, fmt.Errorf("%w: request body needs %d bytes, got %d", ErrFrameTooShort, requestPrefixSize, len(body))
	}

	ga, err := knx.DecodeGroupAddress(body[0:2], level)
	if err != nil {
		return Request{}, err
	}
	dpt, err := knx.DecodeDatapointID(body[2:requestPrefixSize])
	if err != nil {
		return Request{}, err
	}

	req := Request{Action: h.Action, GroupAddress: ga, Datapoint: dpt}
	if h.Action == ActionWriteRequest {
		if req.Values, err = DecodeValues(body[requestPrefixSize:]); err != nil {
			return Request{}, err
		}
	}
	return req, nil
}
