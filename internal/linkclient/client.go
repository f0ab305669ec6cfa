package linkclient

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/nerrad567/knxlink/internal/protocol"
)

// Default connection settings.
const (
	// DefaultHost is the KNX Link server host used when none is configured.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the KNX Link server port used when none is configured.
	DefaultPort = 3672

	// defaultTimeout bounds the dial, the write and every read.
	defaultTimeout = 5 * time.Second
)

// Config holds KNX Link server connection settings.
type Config struct {
	// Host is the server host name or IP address.
	// Default: 127.0.0.1.
	Host string

	// Port is the server TCP port.
	// Default: 3672.
	Port int

	// Timeout bounds the connect, the write and each read individually.
	// Default: 5 seconds.
	Timeout time.Duration
}

// Logger interface for optional logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Handler is called with every response packet, in arrival order.
type Handler func(protocol.ResponseBody)

// Result summarises a completed request.
type Result struct {
	// Packets is the number of response frames received.
	Packets int

	// Messages holds the decoded message of every success packet.
	Messages []string

	// Duration is the time from dial (or write, for Exchange) to the last packet.
	Duration time.Duration
}

// Client sends KNX Link requests, one TCP connection per request.
//
// A Client holds no connection state and is safe for concurrent use.
type Client struct {
	cfg    Config
	logger Logger
}

// New creates a Client, applying defaults to unset fields.
func New(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{cfg: cfg}
}

// SetLogger sets the logger for diagnostic output.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// Address returns the host:port the client dials.
func (c *Client) Address() string {
	return net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
}

// Do dials the server, sends frame and reads the response until the packet
// flagged as last has been received. The connection is closed before Do
// returns.
//
// Cancelling ctx aborts the dial and closes an open connection.
func (c *Client) Do(ctx context.Context, frame []byte, handler Handler) (Result, error) {
	start := time.Now()
	addr := c.Address()

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	c.logDebug("connecting", "address", addr)

	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return Result{}, &TransportError{
			Op:      OpConnect,
			Addr:    addr,
			Refused: errors.Is(err, syscall.ECONNREFUSED),
			Err:     err,
		}
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	result, err := c.Exchange(conn, frame, handler)
	result.Duration = time.Since(start)
	var te *TransportError
	if errors.As(err, &te) && te.Addr == "" {
		te.Addr = addr
	}
	return result, err
}

// deadliner is implemented by connections that support I/O deadlines.
type deadliner interface {
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// Exchange sends frame on an open stream and reads the response packets.
//
// Deadlines are applied when rw supports them. A non-success status is
// returned as *RemoteStatusError after the handler has seen the packet.
func (c *Client) Exchange(rw io.ReadWriter, frame []byte, handler Handler) (Result, error) {
	start := time.Now()
	dl, hasDeadlines := rw.(deadliner)

	if hasDeadlines {
		if err := dl.SetWriteDeadline(time.Now().Add(c.cfg.Timeout)); err != nil {
			return Result{}, &TransportError{Op: OpWrite, Err: err}
		}
	}
	if _, err := rw.Write(frame); err != nil {
		return Result{}, &TransportError{Op: OpWrite, Err: err}
	}
	c.logDebug("frame sent", "frame", hex.EncodeToString(frame))

	var result Result
	reader := NewFrameReader(rw)
	for {
		if hasDeadlines {
			if err := dl.SetReadDeadline(time.Now().Add(c.cfg.Timeout)); err != nil {
				return result, &TransportError{Op: OpRead, Err: err}
			}
		}

		header, body, err := reader.Next()
		if err != nil {
			return result, err
		}
		c.logDebug("frame received", "action", header.Action.String(), "body", hex.EncodeToString(body))

		packet, err := protocol.DecodeResponseBody(body)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		result.Packets++

		if !packet.Status.IsSuccess() {
			if handler != nil {
				handler(packet)
			}
			msg, err := packet.Message()
			if err != nil || msg == "" {
				msg = noMessage
			}
			result.Duration = time.Since(start)
			return result, &RemoteStatusError{Status: packet.Status, Message: msg}
		}

		msg, err := packet.Message()
		if err != nil {
			return result, err
		}
		result.Messages = append(result.Messages, msg)
		if handler != nil {
			handler(packet)
		}

		if packet.LastPacket {
			break
		}
	}

	result.Duration = time.Since(start)
	c.logDebug("response complete", "packets", result.Packets, "duration", result.Duration)
	return result, nil
}

func (c *Client) logDebug(msg string, keysAndValues ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keysAndValues...)
	}
}
