package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nerrad567/knxlink/internal/shell"
)

// shellHistoryFile is kept next to the request history database.
const shellHistoryFile = "shell_history"

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive read/write prompt",
		Long: `Start an interactive prompt. Each line is a command:

  read  <group-address> <datapoint-type>
  write <group-address> <datapoint-type> <value>...

Requests run one at a time, each on its own connection.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a.openSinks(ctx)
			defer a.Close()

			sh, err := shell.New(shell.Config{
				HistoryFile: a.shellHistoryPath(),
				Color:       !opts.noColor,
			}, a.execute)
			if err != nil {
				return err
			}
			return sh.Run(ctx)
		},
	}
}

// shellHistoryPath returns the readline history file, or "" when its
// directory cannot be created.
func (a *app) shellHistoryPath() string {
	dir := filepath.Dir(a.cfg.History.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		a.log.Debug("shell history disabled", "dir", dir, "error", err)
		return ""
	}
	return filepath.Join(dir, shellHistoryFile)
}
