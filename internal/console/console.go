package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/linkclient"
	"github.com/nerrad567/knxlink/internal/protocol"
)

// Line tags.
const (
	tagSuccess = "[SUCCESS]"
	tagError   = "[ERROR]"
)

// Palette used when colour is enabled.
var (
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorDim     = lipgloss.Color("#565f89")
	colorAccent  = lipgloss.Color("#7aa2f7")
)

type styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success: r.NewStyle().Foreground(colorSuccess).Bold(true),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
		dim:     r.NewStyle().Foreground(colorDim),
		accent:  r.NewStyle().Foreground(colorAccent),
	}
}

// Console prints user-facing result lines.
//
// Colour is applied only when enabled and the writer is a terminal.
// Console is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	outSt  styles
	errSt  styles
}

// New creates a Console writing results to out and failures to errOut.
func New(out, errOut io.Writer, color bool) *Console {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	if !color {
		outR = plainRenderer(out)
		errR = plainRenderer(errOut)
	}
	return &Console{
		out:    out,
		errOut: errOut,
		outSt:  newStyles(outR),
		errSt:  newStyles(errR),
	}
}

// Packet prints the non-empty message of a success packet. It has the signature of
// linkclient.Handler; failure packets are reported through Error.
func (c *Console) Packet(body protocol.ResponseBody) {
	if !body.Status.IsSuccess() {
		return
	}
	msg, err := body.Message()
	if err != nil || msg == "" {
		return
	}
	c.println(c.out, c.outSt.success.Render(tagSuccess)+" "+msg)
}

// Error prints a failure line.
//
// A remote status renders as "[ERROR] (<Status>): <message>"; every other
// error as "[ERROR] <error>".
func (c *Console) Error(err error) {
	if err == nil {
		return
	}
	tag := c.errSt.err.Render(tagError)

	var remote *linkclient.RemoteStatusError
	if errors.As(err, &remote) {
		c.println(c.errOut, fmt.Sprintf("%s (%s): %s", tag, remote.Status, remote.Message))
		return
	}
	c.println(c.errOut, tag+" "+err.Error())
}

// Info prints a dimmed informational line.
func (c *Console) Info(format string, args ...any) {
	c.println(c.out, c.outSt.dim.Render(fmt.Sprintf(format, args...)))
}

// Record prints one history record on a single line:
//
//	2026-03-01 10:00:00  read   1/2/3  dpst-9-1  SUCCESS  21.5
func (c *Console) Record(rec history.Record) {
	status := c.outSt.success.Render(rec.Status)
	if !rec.Succeeded() {
		status = c.outSt.err.Render(rec.Status)
	}

	var detail string
	switch {
	case rec.Error != "":
		detail = rec.Error
	case rec.Action == "write" && len(rec.Values) > 0:
		detail = strings.Join(quoteAll(rec.Values), " ")
		if len(rec.Messages) > 0 {
			detail += " -> " + strings.Join(rec.Messages, " ")
		}
	default:
		detail = strings.Join(rec.Messages, " ")
	}

	line := fmt.Sprintf("%s  %-5s  %s  %s  %s  %s",
		c.outSt.dim.Render(rec.CreatedAt.Local().Format(time.DateTime)),
		rec.Action,
		c.outSt.accent.Render(rec.GroupAddress),
		rec.Datapoint,
		status,
		detail,
	)
	c.println(c.out, strings.TrimRight(line, " "))
}

func (c *Console) println(w io.Writer, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, line) //nolint:errcheck // console output is best effort
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return quoted
}
