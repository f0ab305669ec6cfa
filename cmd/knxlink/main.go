// knxlink - command-line client for KNX Link servers.
//
// knxlink reads and writes KNX group addresses through a KNX Link server
// using its binary TCP protocol. Every failure class has its own exit code;
// see internal/exitcode.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/knxlink/internal/console"
	"github.com/nerrad567/knxlink/internal/exitcode"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
// It is separated from main so tests can drive the whole CLI.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		var printed *reportedError
		if !errors.As(err, &printed) {
			console.New(stdout, stderr, false).Error(err)
		}
	}
	return exitcode.For(err)
}

// reportedError marks an error the console has already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// usageError wraps err so it maps to the usage exit code.
func usageError(err error) error {
	return fmt.Errorf("%w: %w", exitcode.ErrUsage, err)
}
