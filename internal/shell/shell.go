package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nerrad567/knxlink/internal/console"
	"github.com/nerrad567/knxlink/internal/protocol"
)

const defaultPrompt = "knx> "

// Command is one parsed read or write line.
type Command struct {
	Action       protocol.Action
	GroupAddress string
	Datapoint    string
	Values       []string
}

// RunFunc executes a command, printing its result through out.
// A returned error has already been reported by the callee.
type RunFunc func(ctx context.Context, cmd Command, out *console.Console) error

// Config holds shell settings.
type Config struct {
	// Prompt is shown before every line. Default: "knx> ".
	Prompt string

	// HistoryFile keeps entered lines between sessions. Empty disables it.
	HistoryFile string

	// Color enables styled output on terminals.
	Color bool
}

// Shell is an interactive read/write prompt. Requests run one at a time.
type Shell struct {
	rl      *readline.Instance
	run     RunFunc
	console *console.Console
	out     io.Writer
}

// New creates a Shell on the process terminal.
func New(cfg Config, run RunFunc) (*Shell, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("read"),
			readline.PcItem("write"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		rl:      rl,
		run:     run,
		console: console.New(rl.Stdout(), rl.Stderr(), cfg.Color),
		out:     rl.Stdout(),
	}, nil
}

// Run reads and executes lines until exit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		if quit := s.Execute(ctx, line); quit {
			return nil
		}
	}
}

// Execute runs a single input line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	fields, err := SplitFields(line)
	if err != nil {
		s.console.Error(err)
		return false
	}
	if len(fields) == 0 {
		return false
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "help", "?":
		s.printHelp()

	case "read", "r":
		if len(args) != 2 { //nolint:mnd // group address and datapoint
			s.console.Error(errors.New("usage: read <group-address> <datapoint-type>"))
			return false
		}
		s.run(ctx, Command{ //nolint:errcheck // reported by RunFunc
			Action:       protocol.ActionReadRequest,
			GroupAddress: args[0],
			Datapoint:    args[1],
		}, s.console)

	case "write", "w":
		if len(args) < 2 { //nolint:mnd // group address and datapoint
			s.console.Error(errors.New("usage: write <group-address> <datapoint-type> [values...]"))
			return false
		}
		s.run(ctx, Command{ //nolint:errcheck // reported by RunFunc
			Action:       protocol.ActionWriteRequest,
			GroupAddress: args[0],
			Datapoint:    args[1],
			Values:       args[2:],
		}, s.console)

	case "quit", "exit", "q":
		return true

	default:
		s.console.Error(fmt.Errorf("unknown command: %s (type 'help' for commands)", name))
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `KNX Link shell commands:
  read  <group-address> <datapoint-type>            read a group address
  write <group-address> <datapoint-type> [values]   write space separated values
                                                    ("quoted values" may contain spaces)
  help                                              show this help
  exit                                              leave the shell`)
}

// SplitFields splits line on whitespace. A double-quoted run is one field
// and may contain spaces; the quotes are removed.
func SplitFields(line string) ([]string, error) {
	var fields []string
	var current strings.Builder
	inQuotes := false
	inField := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			inField = true
		case !inQuotes && (r == ' ' || r == '\t'):
			if inField {
				fields = append(fields, current.String())
				current.Reset()
				inField = false
			}
		default:
			current.WriteRune(r)
			inField = true
		}
	}
	if inQuotes {
		return nil, errors.New("unterminated quote")
	}
	if inField {
		fields = append(fields, current.String())
	}
	return fields, nil
}
