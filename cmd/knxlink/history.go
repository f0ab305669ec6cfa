package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/knx"
	"github.com/nerrad567/knxlink/migrations"
)

// historyFlags holds the history command's flags.
type historyFlags struct {
	limit        int
	groupAddress string
	action       string
	clear        bool
	migrations   bool
	reset        bool
}

// filter validates the flags and builds the list filter.
func (f *historyFlags) filter() (history.Filter, error) {
	filter := history.Filter{Limit: f.limit}

	if f.migrations && f.reset {
		return filter, usageError(errors.New("--migrations and --reset cannot be combined"))
	}

	if f.limit < 0 || f.limit > history.MaxLimit {
		return filter, usageError(fmt.Errorf("--limit must be between 0 and %d, got %d", history.MaxLimit, f.limit))
	}

	switch action := strings.ToLower(f.action); action {
	case "", "read", "write":
		filter.Action = action
	default:
		return filter, usageError(fmt.Errorf("--action must be read or write, got %q", f.action))
	}

	if f.groupAddress != "" {
		ga, err := knx.ParseGroupAddress(f.groupAddress)
		if err != nil {
			return filter, fmt.Errorf("group address %q: %w", f.groupAddress, err)
		}
		filter.GroupAddress = ga.String()
	}
	return filter, nil
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recorded requests",
		Long: `List the requests recorded in the history database, most recent first.

Recording must be enabled with history.enabled in the configuration file.`,
		Example: `  knxlink history --limit 50
  knxlink history -g 1/2/3 --action write
  knxlink history --clear
  knxlink history --migrations`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.cfg.History.Enabled {
				return errDisabled("history")
			}

			ctx := cmd.Context()
			switch {
			case flags.migrations:
				return a.showMigrations(ctx)
			case flags.reset:
				return a.resetHistory(ctx)
			}

			repo, err := a.openHistory(ctx)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}

			if flags.clear {
				n, err := repo.Clear(ctx)
				if err != nil {
					return err
				}
				a.console.Info("removed %d record(s)", n)
				return nil
			}

			records, err := repo.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				a.console.Info("no recorded requests")
				return nil
			}
			for _, rec := range records {
				a.console.Record(rec)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.limit, "limit", "n", history.DefaultLimit, "maximum number of records")
	f.StringVarP(&flags.groupAddress, "group-address", "g", "", "only records for this group address")
	f.StringVar(&flags.action, "action", "", "only read or write records")
	f.BoolVar(&flags.clear, "clear", false, "delete all records")
	f.BoolVar(&flags.migrations, "migrations", false, "show applied and pending schema migrations")
	f.BoolVar(&flags.reset, "reset", false, "roll back every schema migration and recreate the history")
	return cmd
}

// showMigrations prints the schema state of the history database.
func (a *app) showMigrations(ctx context.Context) error {
	db, err := a.openHistoryDB(ctx)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	applied, pending, err := db.MigrationStatus(ctx, migrations.FS)
	if err != nil {
		return err
	}
	for _, m := range applied {
		a.console.Info("applied %s (%s)", m.Version, m.AppliedAt.Local().Format(time.DateTime))
	}
	for _, m := range pending {
		a.console.Info("pending %s %s", m.Version, m.Name)
	}
	return nil
}

// resetHistory rolls back all migrations, dropping every record, and then
// applies them again.
func (a *app) resetHistory(ctx context.Context) error {
	db, err := a.openHistoryDB(ctx)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	applied, _, err := db.MigrationStatus(ctx, migrations.FS)
	if err != nil {
		return err
	}
	for range applied {
		if err := db.MigrateDown(ctx, migrations.FS); err != nil {
			return fmt.Errorf("rolling back history: %w", err)
		}
	}
	if err := db.Migrate(ctx, migrations.FS); err != nil {
		return fmt.Errorf("migrating history: %w", err)
	}
	a.console.Info("history reset (%d migration(s) reapplied)", len(applied))
	return nil
}
