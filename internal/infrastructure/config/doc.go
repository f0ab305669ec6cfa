// Package config handles loading and validating knxlink configuration.
//
// This package manages:
//   - Loading configuration from an optional YAML file
//   - Overriding with KNXLINK_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// Command-line flags are applied by the caller after Load and take
// precedence over both the file and the environment.
//
// Usage:
//
//	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Host, cfg.Server.Port)
package config
