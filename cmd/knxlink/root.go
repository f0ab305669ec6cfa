package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/knxlink/internal/infrastructure/config"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	host       string
	port       int
	configPath string
	noColor    bool
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "knxlink",
		Short: "Read and write KNX group addresses through a KNX Link server",
		Long: `knxlink sends read and write requests to a KNX Link server and prints
every response packet.

Group addresses may be given as main/middle/sub (1/2/3), main/sub (1/515)
or a single number (2563). Datapoint types may be given as 9.001, 9,
dpt-9 or dpst-9-1.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.host, "host", "", "KNX Link server host (default 127.0.0.1)")
	pf.IntVar(&opts.port, "port", 0, "KNX Link server port (default 3672)")
	pf.StringVar(&opts.configPath, "config", "", fmt.Sprintf("config file (default $%s)", config.EnvConfigPath))
	pf.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	pf.BoolVar(&opts.verbose, "verbose", false, "log protocol diagnostics")

	cmd.AddCommand(
		newReadCmd(opts),
		newWriteCmd(opts),
		newShellCmd(opts),
		newHistoryCmd(opts),
		newMonitorCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// usageArgs wraps a cobra argument validator so its errors map to the
// usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// resolveConfigPath returns --config, falling back to $KNXLINK_CONFIG.
func (o *rootOptions) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return os.Getenv(config.EnvConfigPath)
}
