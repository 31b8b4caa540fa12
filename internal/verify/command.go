package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/utf8guard/internal/execshell"
	"github.com/temirov/utf8guard/internal/tracked"
	"github.com/temirov/utf8guard/internal/ui"
	"github.com/temirov/utf8guard/internal/utils"
	"github.com/temirov/utf8guard/internal/utils/flags"
)

const (
	commandUseConstant                       = "verify"
	commandShortDescriptionConstant          = "Check that every tracked text file is UTF-8"
	commandLongDescriptionConstant           = "verify lists the files tracked by Git, skips binary files containing NUL bytes and reports every remaining file that is not valid UTF-8."
	commandExecutionErrorTemplateConstant    = "utf-8 verification failed: %w"
	unexpectedArgumentsMessageConstant       = "verify does not accept positional arguments"
	flagListerNameConstant                   = "lister"
	flagListerDescriptionConstant            = "Enumerate tracked files with the git binary or by reading the index directly"
	flagReadErrorsNameConstant               = "read-errors"
	flagReadErrorsDescriptionConstant        = "Abort on unreadable tracked files or report them alongside encoding violations"
	flagStreamThresholdNameConstant          = "stream-threshold"
	flagStreamThresholdDescriptionConstant   = "Validate files larger than this many bytes without loading them into memory (0 disables streaming)"
	flagRepositoryNameConstant               = "repository"
	flagRepositoryDescriptionConstant        = "Directory whose tracked files are verified"
	invalidListerTemplateConstant            = "invalid lister: %w"
	invalidReadFailurePolicyTemplateConstant = "invalid read error policy: %w"
	negativeStreamThresholdMessageConstant   = "stream threshold must not be negative"
)

var (
	errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

	errNegativeStreamThreshold = errors.New(negativeStreamThresholdMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// HumanReadableLoggingProvider reports whether git invocations should be rendered for humans.
type HumanReadableLoggingProvider func() bool

// ConfigurationProvider returns the current verify configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the verify cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitExecutor                  tracked.GitExecutor
	Lister                       tracked.Lister
	FileSystem                   FileSystem
	CommandEventsObserver        execshell.CommandEventObserver
}

// Build constructs the verify command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagListerNameConstant, defaults.Lister, flags.FormatChoiceUsage(defaults.Lister, tracked.ListerKinds(), flagListerDescriptionConstant))
	command.Flags().String(flagReadErrorsNameConstant, defaults.ReadErrors, flags.FormatChoiceUsage(defaults.ReadErrors, ReadFailurePolicies(), flagReadErrorsDescriptionConstant))
	command.Flags().Int64(flagStreamThresholdNameConstant, defaults.StreamingThresholdBytes, flagStreamThresholdDescriptionConstant)
	command.Flags().String(flagRepositoryNameConstant, defaults.Repository, flagRepositoryDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	lister, listerError := builder.resolveLister(logger, options)
	if listerError != nil {
		return listerError
	}

	service, serviceError := NewService(logger, lister, ResolveFileSystem(builder.FileSystem), utils.NewFlushingWriter(command.OutOrStdout()))
	if serviceError != nil {
		return serviceError
	}

	if _, runError := service.Run(command.Context(), options); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	listerValue := configuration.Lister
	if command.Flags().Changed(flagListerNameConstant) {
		flagValue, flagError := command.Flags().GetString(flagListerNameConstant)
		if flagError != nil {
			return CommandOptions{}, flagError
		}
		listerValue = flagValue
	}
	parsedLister, listerParseError := flags.ParseChoice(listerValue, tracked.ListerKinds())
	if listerParseError != nil {
		return CommandOptions{}, fmt.Errorf(invalidListerTemplateConstant, listerParseError)
	}

	readErrorsValue := configuration.ReadErrors
	if command.Flags().Changed(flagReadErrorsNameConstant) {
		flagValue, flagError := command.Flags().GetString(flagReadErrorsNameConstant)
		if flagError != nil {
			return CommandOptions{}, flagError
		}
		readErrorsValue = flagValue
	}
	parsedPolicy, policyParseError := flags.ParseChoice(readErrorsValue, ReadFailurePolicies())
	if policyParseError != nil {
		return CommandOptions{}, fmt.Errorf(invalidReadFailurePolicyTemplateConstant, policyParseError)
	}

	streamThresholdValue := configuration.StreamingThresholdBytes
	if command.Flags().Changed(flagStreamThresholdNameConstant) {
		flagValue, flagError := command.Flags().GetInt64(flagStreamThresholdNameConstant)
		if flagError != nil {
			return CommandOptions{}, flagError
		}
		streamThresholdValue = flagValue
	}
	if streamThresholdValue < 0 {
		return CommandOptions{}, errNegativeStreamThreshold
	}

	repositoryValue := configuration.Repository
	if command.Flags().Changed(flagRepositoryNameConstant) {
		flagValue, flagError := command.Flags().GetString(flagRepositoryNameConstant)
		if flagError != nil {
			return CommandOptions{}, flagError
		}
		repositoryValue = strings.TrimSpace(flagValue)
	}
	if len(repositoryValue) == 0 {
		repositoryValue = defaultRepositoryPathConstant
	}

	return CommandOptions{
		ListerKind:              tracked.ListerKind(parsedLister),
		ReadFailurePolicy:       ReadFailurePolicy(parsedPolicy),
		StreamingThresholdBytes: streamThresholdValue,
		RepositoryPath:          repositoryValue,
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveLister(logger *zap.Logger, options CommandOptions) (tracked.Lister, error) {
	if builder.Lister != nil {
		return builder.Lister, nil
	}

	var gitExecutor tracked.GitExecutor
	if options.ListerKind == tracked.ListerKindGit {
		resolvedExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveCommandEventsObserver(logger))
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = resolvedExecutor
	}

	return ResolveLister(nil, options.ListerKind, gitExecutor, options.RepositoryPath)
}

func (builder *CommandBuilder) resolveCommandEventsObserver(logger *zap.Logger) execshell.CommandEventObserver {
	if builder.CommandEventsObserver != nil {
		return builder.CommandEventsObserver
	}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		return ui.NewConsoleCommandEventLogger(logger)
	}
	return nil
}
