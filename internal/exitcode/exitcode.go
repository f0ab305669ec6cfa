// Package exitcode maps errors to process exit codes.
//
// It is the only place that knows the numeric codes. Packages return errors;
// main passes the final error to For and exits with the result.
package exitcode

import (
	"errors"

	"github.com/nerrad567/knxlink/internal/knx"
	"github.com/nerrad567/knxlink/internal/linkclient"
	"github.com/nerrad567/knxlink/internal/protocol"
)

// Exit codes.
const (
	OK                 = 0
	Failure            = 1
	Usage              = 2
	Config             = 3
	GroupAddress       = 10
	Datapoint          = 11
	InvalidValue       = 12
	WriteFailed        = 30
	UnsupportedVersion = 40
	InvalidHeader      = 41
	InvalidResponse    = 44
	InvalidMessage     = 45
	ReadFailed         = 46
	ConnectRefused     = 50
	ConnectFailed      = 51
	remoteStatusBase   = 60
)

// Errors raised outside the protocol packages that still need their own code.
var (
	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("usage error")

	// ErrConfig marks a configuration load or validation failure.
	ErrConfig = errors.New("configuration error")
)

// For returns the exit code for err. A nil error maps to OK.
func For(err error) int {
	if err == nil {
		return OK
	}

	var statusErr *linkclient.RemoteStatusError
	if errors.As(err, &statusErr) {
		return remoteStatusBase + int(statusErr.Status)
	}

	var te *linkclient.TransportError
	if errors.As(err, &te) {
		switch {
		case te.Op == linkclient.OpConnect && te.Refused:
			return ConnectRefused
		case te.Op == linkclient.OpConnect:
			return ConnectFailed
		case te.Op == linkclient.OpWrite:
			return WriteFailed
		default:
			return ReadFailed
		}
	}

	switch {
	case errors.Is(err, ErrUsage):
		return Usage
	case errors.Is(err, ErrConfig):
		return Config
	case errors.Is(err, knx.ErrInvalidGroupAddress),
		errors.Is(err, knx.ErrMainOverflow),
		errors.Is(err, knx.ErrMiddleOverflow),
		errors.Is(err, knx.ErrSubOverflow):
		return GroupAddress
	case errors.Is(err, knx.ErrInvalidDPT),
		errors.Is(err, knx.ErrDPTMainOverflow),
		errors.Is(err, knx.ErrDPTSubOverflow):
		return Datapoint
	case errors.Is(err, protocol.ErrInvalidValue),
		errors.Is(err, protocol.ErrFrameTooLarge):
		return InvalidValue
	case errors.Is(err, linkclient.ErrUnsupportedVersion):
		return UnsupportedVersion
	case errors.Is(err, linkclient.ErrInvalidHeader):
		return InvalidHeader
	case errors.Is(err, linkclient.ErrInvalidResponse):
		return InvalidResponse
	case errors.Is(err, protocol.ErrInvalidMessage):
		return InvalidMessage
	default:
		return Failure
	}
}
