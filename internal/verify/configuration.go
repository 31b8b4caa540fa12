package verify

import (
	"strings"

	"github.com/temirov/utf8guard/internal/tracked"
)

const (
	configurationListerKeyConstant             = "lister"
	configurationReadErrorsKeyConstant         = "read_errors"
	configurationStreamingThresholdKeyConstant = "streaming_threshold_bytes"
	configurationRepositoryKeyConstant         = "repository"
	configurationKeySeparatorConstant          = "."
	defaultRepositoryPathConstant              = "."
)

// CommandConfiguration captures configuration values for the verify command.
type CommandConfiguration struct {
	Lister                  string `mapstructure:"lister"`
	ReadErrors              string `mapstructure:"read_errors"`
	StreamingThresholdBytes int64  `mapstructure:"streaming_threshold_bytes"`
	Repository              string `mapstructure:"repository"`
}

// DefaultCommandConfiguration provides baseline configuration values for verification.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Lister:                  string(tracked.ListerKindGit),
		ReadErrors:              string(ReadFailurePolicyAbort),
		StreamingThresholdBytes: 0,
		Repository:              defaultRepositoryPathConstant,
	}
}

// DefaultConfigurationValues flattens the default configuration into viper keys under sectionName.
func DefaultConfigurationValues(sectionName string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := sectionName + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationListerKeyConstant:             defaults.Lister,
		prefix + configurationReadErrorsKeyConstant:         defaults.ReadErrors,
		prefix + configurationStreamingThresholdKeyConstant: defaults.StreamingThresholdBytes,
		prefix + configurationRepositoryKeyConstant:         defaults.Repository,
	}
}

// Sanitize trims and lowercases textual values. Numeric values are validated when options are parsed.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Lister = strings.ToLower(strings.TrimSpace(configuration.Lister))
	sanitized.ReadErrors = strings.ToLower(strings.TrimSpace(configuration.ReadErrors))
	sanitized.Repository = strings.TrimSpace(configuration.Repository)

	return sanitized
}
