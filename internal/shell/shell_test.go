package shell

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/nerrad567/knxlink/internal/console"
	"github.com/nerrad567/knxlink/internal/protocol"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{line: "", want: nil},
		{line: "   ", want: nil},
		{line: "read 1/2/3 9.001", want: []string{"read", "1/2/3", "9.001"}},
		{line: "  write\t1/2/3  1.001 on ", want: []string{"write", "1/2/3", "1.001", "on"}},
		{line: `write 1/2/3 16.001 "Hello World" x`, want: []string{"write", "1/2/3", "16.001", "Hello World", "x"}},
		{line: `write 1/2/3 16.001 ""`, want: []string{"write", "1/2/3", "16.001", ""}},
		{line: `write 1/2/3 16.001 "open`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitFields(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitFields() = %q, want %q", got, tt.want)
			}
		})
	}
}

func newTestShell(t *testing.T) (*Shell, *[]Command, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	var commands []Command
	s := &Shell{
		run: func(_ context.Context, cmd Command, _ *console.Console) error {
			commands = append(commands, cmd)
			return nil
		},
		console: console.New(&out, &out, false),
		out:     &out,
	}
	return s, &commands, &out
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantQuit   bool
		wantCmd    *Command
		wantOutput string
	}{
		{
			name:    "read",
			line:    "read 1/2/3 9.001",
			wantCmd: &Command{Action: protocol.ActionReadRequest, GroupAddress: "1/2/3", Datapoint: "9.001"},
		},
		{
			name: "write with quoted value",
			line: `w 4711 dpt-16 "Hello World"`,
			wantCmd: &Command{
				Action:       protocol.ActionWriteRequest,
				GroupAddress: "4711",
				Datapoint:    "dpt-16",
				Values:       []string{"Hello World"},
			},
		},
		{
			name:       "read missing datapoint",
			line:       "read 1/2/3",
			wantOutput: "[ERROR] usage: read",
		},
		{
			name:       "write missing datapoint",
			line:       "write 1/2/3",
			wantOutput: "[ERROR] usage: write",
		},
		{
			name:       "unknown command",
			line:       "toggle 1/2/3",
			wantOutput: "[ERROR] unknown command: toggle",
		},
		{
			name:       "unterminated quote",
			line:       `write 1/2/3 1.001 "on`,
			wantOutput: "[ERROR] unterminated quote",
		},
		{
			name:       "help",
			line:       "HELP",
			wantOutput: "KNX Link shell commands",
		},
		{name: "empty", line: ""},
		{name: "exit", line: "exit", wantQuit: true},
		{name: "quit", line: "q", wantQuit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, commands, out := newTestShell(t)

			if quit := s.Execute(context.Background(), tt.line); quit != tt.wantQuit {
				t.Errorf("Execute() quit = %v, want %v", quit, tt.wantQuit)
			}

			switch {
			case tt.wantCmd == nil && len(*commands) != 0:
				t.Errorf("unexpected commands %+v", *commands)
			case tt.wantCmd != nil && (len(*commands) != 1 || !reflect.DeepEqual((*commands)[0], *tt.wantCmd)):
				t.Errorf("commands = %+v, want %+v", *commands, *tt.wantCmd)
			}

			if tt.wantOutput != "" && !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.wantOutput)
			}
		})
	}
}
