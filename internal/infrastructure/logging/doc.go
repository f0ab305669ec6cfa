// Package logging provides structured logging for knxlink.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured diagnostics across the client.
//
// # Features
//
//   - Text output by default, JSON on request
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Writes to stderr so stdout carries only command results
//
// # Configuration
//
//	logging:
//	  level: "warn"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Debug("frame sent", "frame", hex.EncodeToString(frame))
//
// Never log MQTT passwords or InfluxDB tokens.
package logging
