package linkclient

import (
	"errors"
	"fmt"
	"io"

	"github.com/nerrad567/knxlink/internal/protocol"
)

// readChunkSize is the most bytes requested from the connection per Read.
const readChunkSize = protocol.MaxBodySize

// FrameReader splits a byte stream into KNX Link frames.
//
// Each Read asks for at most readChunkSize bytes. Bytes past the end of the
// current frame are kept for the next call, so a stream that delivers one
// frame per Read is consumed with exactly one Read per frame.
type FrameReader struct {
	r       io.Reader
	buf     [readChunkSize]byte
	pending []byte
	err     error
}

// NewFrameReader returns a FrameReader reading from r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// Next returns the header and body of the next frame.
//
// Header failures are reported as ErrInvalidHeader or ErrUnsupportedVersion,
// stream failures as *TransportError with Op OpRead.
func (fr *FrameReader) Next() (protocol.Header, []byte, error) {
	for {
		h, body, ok, err := fr.frame()
		if err != nil || ok {
			return h, body, err
		}

		if fr.err != nil {
			if errors.Is(fr.err, io.EOF) && len(fr.pending) > 0 {
				fr.err = io.ErrUnexpectedEOF
			}
			return protocol.Header{}, nil, &TransportError{Op: OpRead, Err: fr.err}
		}

		n, err := fr.r.Read(fr.buf[:])
		fr.pending = append(fr.pending, fr.buf[:n]...)
		if err != nil {
			fr.err = err
		}
	}
}

// frame extracts one complete frame from pending, if there is one.
func (fr *FrameReader) frame() (protocol.Header, []byte, bool, error) {
	if len(fr.pending) < protocol.HeaderSize {
		return protocol.Header{}, nil, false, nil
	}

	h, err := protocol.ParseHeader(fr.pending)
	if err != nil {
		return protocol.Header{}, nil, false, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if h.Version != protocol.Version1 {
		return protocol.Header{}, nil, false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if len(fr.pending) < h.FrameSize() {
		return protocol.Header{}, nil, false, nil
	}

	body, err := h.Body(fr.pending)
	if err != nil {
		return protocol.Header{}, nil, false, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	body = append([]byte(nil), body...)
	fr.pending = fr.pending[h.FrameSize():]
	return h, body, true, nil
}
