// Package utils hosts the ambient plumbing shared by every command.
//
// ConfigurationLoader layers embedded defaults, an optional YAML file and
// UTF8GUARD_* environment variables through Viper. LoggerFactory builds zap
// loggers in structured or console form. FlushingWriter keeps report output
// visible line by line when stdout is piped into CI logs.
package utils
