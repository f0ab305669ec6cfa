package linkclient

import (
	"errors"
	"fmt"

	"github.com/nerrad567/knxlink/internal/protocol"
)

// Domain errors for the KNX Link transport loop.
var (
	// ErrUnsupportedVersion is returned when a response header carries a
	// protocol version other than 1.
	ErrUnsupportedVersion = errors.New("linkclient: unsupported protocol version")

	// ErrInvalidHeader is returned when a response header cannot be parsed.
	ErrInvalidHeader = errors.New("linkclient: invalid response header")

	// ErrInvalidResponse is returned when a response body cannot be parsed.
	ErrInvalidResponse = errors.New("linkclient: invalid response body")
)

// Op names the transport step that failed.
type Op string

// Transport steps.
const (
	OpConnect Op = "connect"
	OpWrite   Op = "write"
	OpRead    Op = "read"
)

// TransportError reports a failed connect, write or read on the connection.
type TransportError struct {
	Op   Op
	Addr string

	// Refused is set when the server actively refused the connection.
	Refused bool

	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.Refused:
		return fmt.Sprintf("linkclient: connection to %s refused", e.Addr)
	case e.Addr != "":
		return fmt.Sprintf("linkclient: %s %s: %v", e.Op, e.Addr, e.Err)
	default:
		return fmt.Sprintf("linkclient: %s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline expiry.
func (e *TransportError) Timeout() bool {
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

// noMessage stands in for a missing or undecodable failure message.
const noMessage = "<no message>"

// RemoteStatusError is returned when the server answers with a status other
// than success.
type RemoteStatusError struct {
	Status  protocol.Status
	Message string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("linkclient: server returned %s: %s", e.Status, e.Message)
}
