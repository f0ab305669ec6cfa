package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/linkclient"
	"github.com/nerrad567/knxlink/internal/protocol"
)

func newTestConsole() (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(&out, &errOut, false), &out, &errOut
}

func TestPacket(t *testing.T) {
	tests := []struct {
		name string
		body protocol.ResponseBody
		want string
	}{
		{
			name: "success message",
			body: protocol.ResponseBody{LastPacket: true, Status: protocol.StatusSuccess, Data: []byte("21.5 °C")},
			want: "[SUCCESS] 21.5 °C\n",
		},
		{
			name: "empty success message",
			body: protocol.ResponseBody{Status: protocol.StatusSuccess},
			want: "",
		},
		{
			name: "failure packet is left to Error",
			body: protocol.ResponseBody{Status: protocol.StatusErrorTimeout, Data: []byte("timeout")},
			want: "",
		},
		{
			name: "undecodable message",
			body: protocol.ResponseBody{Status: protocol.StatusSuccess, Data: []byte{0xff, 0xfe}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole()
			c.Packet(tt.body)
			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "remote status",
			err:  &linkclient.RemoteStatusError{Status: protocol.StatusErrorGroupAddress, Message: "no such group"},
			want: "[ERROR] (ERROR_GROUP_ADDRESS): no such group\n",
		},
		{
			name: "local error",
			err:  errors.New("group address \"1/8/1\": out of range"),
			want: "[ERROR] group address \"1/8/1\": out of range\n",
		},
		{
			name: "nil",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, errOut := newTestConsole()
			c.Error(tt.err)
			if got := errOut.String(); got != tt.want {
				t.Errorf("stderr = %q, want %q", got, tt.want)
			}
			if out.Len() != 0 {
				t.Errorf("stdout = %q, want empty", out.String())
			}
		})
	}
}

func TestRecord(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		rec      history.Record
		contains []string
	}{
		{
			name: "read",
			rec: history.Record{
				Action: "read", GroupAddress: "1/2/3", Datapoint: "dpst-9-1",
				Status: "SUCCESS", Messages: []string{"21.5"}, CreatedAt: at,
			},
			contains: []string{"2026-03-01 10:00:00", "read ", "1/2/3", "dpst-9-1", "SUCCESS", "21.5"},
		},
		{
			name: "write",
			rec: history.Record{
				Action: "write", GroupAddress: "4711", Datapoint: "dpt-1",
				Values: []string{"on", "now"}, Status: "SUCCESS", Messages: []string{"done"}, CreatedAt: at,
			},
			contains: []string{"write", "4711", `"on" "now" -> done`},
		},
		{
			name: "failure",
			rec: history.Record{
				Action: "read", GroupAddress: "1/2/3", Datapoint: "dpt-1",
				Status: "FAILED", Error: "connection refused", ExitCode: 50, CreatedAt: at,
			},
			contains: []string{"FAILED", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole()
			c.Record(tt.rec)

			line := out.String()
			if strings.Count(line, "\n") != 1 {
				t.Fatalf("output %q is not a single line", line)
			}
			for _, want := range tt.contains {
				if !strings.Contains(line, want) {
					t.Errorf("output %q missing %q", line, want)
				}
			}
		})
	}
}

func TestNoColorHasNoEscapes(t *testing.T) {
	c, out, errOut := newTestConsole()
	c.Packet(protocol.ResponseBody{Status: protocol.StatusSuccess, Data: []byte("ok")})
	c.Error(errors.New("boom"))
	c.Info("%d records", 3)

	for _, s := range []string{out.String(), errOut.String()} {
		if strings.Contains(s, "\x1b[") {
			t.Errorf("output %q contains escape sequences", s)
		}
	}
	if !strings.Contains(out.String(), "3 records") {
		t.Errorf("Info() output = %q", out.String())
	}
}
