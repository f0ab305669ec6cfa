package history

import "time"

// Record is one request sent to a KNX Link server and its outcome.
type Record struct {
	ID           string        `json:"id"`
	Action       string        `json:"action"`
	GroupAddress string        `json:"group_address"`
	Datapoint    string        `json:"datapoint"`
	Values       []string      `json:"values,omitempty"`
	Status       string        `json:"status"`
	Messages     []string      `json:"messages,omitempty"`
	Error        string        `json:"error,omitempty"`
	ExitCode     int           `json:"exit_code"`
	Packets      int           `json:"packets"`
	Duration     time.Duration `json:"duration"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Succeeded reports whether the request completed with exit code 0.
func (r *Record) Succeeded() bool {
	return r.ExitCode == 0
}

// Filter controls which records List returns.
type Filter struct {
	Action       string // optional: "read" or "write"
	GroupAddress string // optional: exact rendered address, e.g. "1/2/3"
	Limit        int    // default 20, max 500
}

// Default and maximum page sizes for List.
const (
	DefaultLimit = 20
	MaxLimit     = 500
)
