package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/knxlink/internal/console"
	"github.com/nerrad567/knxlink/internal/exitcode"
	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/infrastructure/config"
	"github.com/nerrad567/knxlink/internal/infrastructure/database"
	"github.com/nerrad567/knxlink/internal/infrastructure/influxdb"
	"github.com/nerrad567/knxlink/internal/infrastructure/logging"
	"github.com/nerrad567/knxlink/internal/infrastructure/mqtt"
	"github.com/nerrad567/knxlink/internal/linkclient"
	"github.com/nerrad567/knxlink/internal/protocol"
	"github.com/nerrad567/knxlink/internal/recorder"
	"github.com/nerrad567/knxlink/internal/shell"
	"github.com/nerrad567/knxlink/migrations"
)

// app is the wiring shared by the commands of one invocation.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	console  *console.Console
	client   *linkclient.Client
	recorder *recorder.Recorder

	closers []func() error
}

// newApp loads configuration, applies flag overrides and builds the logger,
// console and KNX Link client.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.resolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", exitcode.ErrConfig, err)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError(err)
	}

	logOut := opts.stderr
	if cfg.Logging.Output == "stdout" {
		logOut = opts.stdout
	}
	log := logging.NewWithWriter(cfg.Logging, version, logOut)

	client := linkclient.New(linkclient.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	client.SetLogger(log.With("component", "linkclient"))

	return &app{
		cfg:      cfg,
		log:      log,
		console:  console.New(opts.stdout, opts.stderr, !opts.noColor),
		client:   client,
		recorder: recorder.New(recorder.Deps{Logger: log}),
	}, nil
}

// openSinks connects the enabled recording sinks. A sink that cannot be
// opened is logged and skipped.
func (a *app) openSinks(ctx context.Context) {
	deps := recorder.Deps{Logger: a.log.With("component", "recorder")}

	if a.cfg.History.Enabled {
		repo, err := a.openHistory(ctx)
		if err != nil {
			a.log.Warn("request history unavailable", "path", a.cfg.History.Path, "error", err)
		} else {
			deps.Store = repo
		}
	}

	if a.cfg.MQTT.Enabled {
		client, err := a.openMQTT()
		if err != nil {
			a.log.Warn("mqtt unavailable", "broker", a.cfg.MQTT.Broker.Host, "error", err)
		} else {
			deps.Publisher = client
		}
	}

	if a.cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(ctx, a.cfg.InfluxDB)
		if err != nil {
			a.log.Warn("influxdb unavailable", "url", a.cfg.InfluxDB.URL, "error", err)
		} else {
			client.SetOnError(func(err error) {
				a.log.Warn("influxdb write failed", "error", err)
			})
			a.closers = append(a.closers, client.Close)
			deps.Metrics = client
		}
	}

	a.recorder = recorder.New(deps)
}

func (a *app) openHistory(ctx context.Context) (*history.SQLiteRepository, error) {
	db, err := a.openHistoryDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, migrations.FS); err != nil {
		return nil, fmt.Errorf("migrating history: %w", err)
	}
	return history.NewSQLiteRepository(db.DB), nil
}

// openHistoryDB opens the history database without migrating it.
func (a *app) openHistoryDB(ctx context.Context) (*database.DB, error) {
	db, err := database.Open(ctx, database.Config{
		Path:        a.cfg.History.Path,
		BusyTimeout: a.cfg.History.BusyTimeout,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	a.log.Debug("history database opened", "path", db.Path())
	return db, nil
}

func (a *app) openMQTT() (*mqtt.Client, error) {
	client, err := mqtt.Connect(a.cfg.MQTT)
	if err != nil {
		return nil, err
	}
	client.SetLogger(a.log.With("component", "mqtt"))
	a.closers = append(a.closers, client.Close)
	return client, nil
}

// Close releases sinks in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("closing resource failed", "error", err)
		}
	}
	a.closers = nil
}

// execute sends one request, streams its packets to out and records the
// outcome. Returned errors have been printed already.
func (a *app) execute(ctx context.Context, cmd shell.Command, out *console.Console) error {
	req, err := protocol.ParseRequest(cmd.Action, cmd.GroupAddress, cmd.Datapoint, cmd.Values)
	if err != nil {
		out.Error(err)
		return reported(err)
	}
	frame, err := req.Encode()
	if err != nil {
		out.Error(err)
		return reported(err)
	}

	a.log.Debug("sending request",
		"action", req.Action,
		"group_address", req.GroupAddress,
		"datapoint", req.Datapoint,
		"server", a.client.Address(),
	)

	result, err := a.client.Do(ctx, frame, out.Packet)
	a.recorder.Record(ctx, recorder.Outcome{Request: req, Result: result, Err: err})
	if err != nil {
		out.Error(err)
		return reported(err)
	}
	return nil
}

// errDisabled builds the error returned when a command needs a disabled
// configuration section.
func errDisabled(section string) error {
	return fmt.Errorf("%w: %s is disabled (set %s.enabled: true)", exitcode.ErrConfig, section, section)
}
