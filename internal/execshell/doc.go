// Package execshell provides structured helpers for invoking the git binary.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// notifications, OSCommandRunner is the os/exec backed default, and the
// CommandFailedError/CommandExecutionError types distinguish non-zero exits
// from commands that could not be started at all.
package execshell
