package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/knxlink/internal/protocol"
	"github.com/nerrad567/knxlink/internal/shell"
)

// requestFlags are the flags shared by read and write.
type requestFlags struct {
	groupAddress string
	datapoint    string
	values       string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.groupAddress, "group-address", "g", "", "group address: 1/2/3, 1/515 or 2563 (required)")
	cmd.Flags().StringVarP(&f.datapoint, "datapoint", "d", "", "datapoint type: 9.001, 9, dpt-9 or dpst-9-1 (required)")
}

// command validates the flags and builds the request command.
func (f *requestFlags) command(action protocol.Action) (shell.Command, error) {
	var missing []string
	if f.groupAddress == "" {
		missing = append(missing, "--group-address")
	}
	if f.datapoint == "" {
		missing = append(missing, "--datapoint")
	}
	if len(missing) > 0 {
		return shell.Command{}, usageError(fmt.Errorf("required flag(s) %v not set", missing))
	}

	cmd := shell.Command{
		Action:       action,
		GroupAddress: f.groupAddress,
		Datapoint:    f.datapoint,
	}
	if action == protocol.ActionWriteRequest {
		values, err := shell.SplitFields(f.values)
		if err != nil {
			return shell.Command{}, usageError(fmt.Errorf("--values: %w", err))
		}
		cmd.Values = values
	}
	return cmd, nil
}

func newReadCmd(opts *rootOptions) *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read the value of a group address",
		Example: `  knxlink read -g 1/2/3 -d 9.001
  knxlink --host 192.168.1.20 read -g 2563 -d dpt-1`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.command(protocol.ActionReadRequest)
			if err != nil {
				return err
			}
			return runRequest(cmd, opts, req)
		},
	}
	flags.register(cmd)
	return cmd
}

func newWriteCmd(opts *rootOptions) *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write values to a group address",
		Long: `Write values to a group address.

Values are separated by spaces; wrap a value in double quotes to keep its
spaces. Each value is sent as a quoted string, so a value may not itself
contain a double quote. Without --values the request carries no values.`,
		Example: `  knxlink write -g 1/2/3 -d 1.001 -v on
  knxlink write -g 1/2/4 -d 232.600 -v "255 128 0"`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.command(protocol.ActionWriteRequest)
			if err != nil {
				return err
			}
			return runRequest(cmd, opts, req)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.values, "values", "v", "", "space separated values")
	return cmd
}

// runRequest executes a single read or write request.
func runRequest(cmd *cobra.Command, opts *rootOptions, req shell.Command) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a.openSinks(ctx)
	defer a.Close()

	return a.execute(ctx, req, a.console)
}
