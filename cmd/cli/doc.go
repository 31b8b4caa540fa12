// Package cli constructs the utf8guard command-line interface, wiring the
// Cobra root command, the Viper configuration loader and zap logging around
// the verify command. Configuration is layered from the embedded defaults,
// an optional .utf8guard.yaml file, UTF8GUARD_* environment variables and
// finally explicit flags.
package cli
