package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/infrastructure/mqtt"
)

func newMonitorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Print results published by other knxlink processes",
		Long: `Subscribe to the MQTT result topics and print every request outcome
other knxlink processes publish, until interrupted.

Publishing must be enabled with mqtt.enabled in the configuration file.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.cfg.MQTT.Enabled {
				return errDisabled("mqtt")
			}

			client, err := a.openMQTT()
			if err != nil {
				return fmt.Errorf("connecting to mqtt: %w", err)
			}

			if err := client.FollowResults(a.resultHandler()); err != nil {
				return err
			}
			a.console.Info("monitoring %s (Ctrl+C to stop)", client.Topics().AllResults())

			<-cmd.Context().Done()
			if err := client.Unsubscribe(client.Topics().AllResults()); err != nil {
				a.log.Warn("unsubscribing from results failed", "error", err)
			}
			return nil
		},
	}
}

// resultHandler prints each published record.
func (a *app) resultHandler() mqtt.ResultHandler {
	return func(groupAddress string, payload []byte) error {
		var rec history.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("decoding result for %s: %w", groupAddress, err)
		}
		a.console.Record(rec)
		return nil
	}
}
