package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant         = "shell executor requires a logger"
	commandRunnerNotConfiguredMessageConstant  = "shell executor requires a command runner"
	commandFailedErrorTemplateConstant         = "%s exited with code %d"
	commandFailedStandardErrorTemplateConstant = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant      = "%s could not be executed: %v"
	logFieldCommandNameConstant                = "command_name"
	logFieldArgumentsConstant                  = "arguments"
	logFieldWorkingDirectoryConstant           = "working_directory"
	logFieldExitCodeConstant                   = "exit_code"
	logFieldStandardErrorConstant              = "standard_error"
	commandGitStringConstant                   = "git"
)

// CommandName identifies an executable supported by the executor.
type CommandName string

// CommandGit identifies the git executable.
const CommandGit CommandName = CommandName(commandGitStringConstant)

var (
	// ErrLoggerNotConfigured indicates a nil logger was supplied to NewShellExecutor.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

	// ErrCommandRunnerNotConfigured indicates a nil runner was supplied to NewShellExecutor.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandDetails describes the arguments and location of a single invocation.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
}

// ShellCommand combines an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran but exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failing command and its exit code.
func (failure CommandFailedError) Error() string {
	label := describeCommand(failure.Command)
	standardError := strings.TrimSpace(failure.Result.StandardError)
	if len(standardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, label, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedStandardErrorTemplateConstant, label, failure.Result.ExitCode, standardError)
}

// CommandExecutionError reports a command that could not be started or waited on.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command and the underlying cause.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs commands through a CommandRunner while logging their lifecycle.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor validates its collaborators and builds a ShellExecutor.
// When an observer is supplied it receives lifecycle events instead of the structured logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	var observer CommandEventObserver
	for _, candidate := range observers {
		if candidate != nil {
			observer = candidate
		}
	}

	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  observer,
		formatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs git with the supplied details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// Execute runs an arbitrary command and converts non-zero exits into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.notifyStarted(command)

	result, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.notifyExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.notifyCompleted(command, result)
	if result.ExitCode != 0 {
		return ExecutionResult{}, CommandFailedError{Command: command, Result: result}
	}

	return result, nil
}

func (executor *ShellExecutor) notifyStarted(command ShellCommand) {
	if executor.observer != nil {
		executor.observer.CommandStarted(command)
		return
	}
	executor.logger.Info(
		executor.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
}

func (executor *ShellExecutor) notifyCompleted(command ShellCommand, result ExecutionResult) {
	if executor.observer != nil {
		executor.observer.CommandCompleted(command, result)
		return
	}
	if result.ExitCode == 0 {
		executor.logger.Info(
			executor.formatter.BuildSuccessMessage(command),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, result.ExitCode),
		)
		return
	}
	executor.logger.Warn(
		executor.formatter.BuildFailureMessage(command, result),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)),
	)
}

func (executor *ShellExecutor) notifyExecutionFailed(command ShellCommand, failure error) {
	if executor.observer != nil {
		executor.observer.CommandExecutionFailed(command, failure)
		return
	}
	executor.logger.Error(
		executor.formatter.BuildExecutionFailureMessage(command, failure),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Error(failure),
	)
}

func describeCommand(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	commandParts = append(commandParts, command.Details.Arguments...)
	return strings.Join(commandParts, " ")
}
