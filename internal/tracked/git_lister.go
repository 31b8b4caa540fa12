package tracked

import (
	"context"

	"github.com/temirov/utf8guard/internal/execshell"
)

const (
	listFilesSubcommandConstant = "ls-files"
	nulTerminatedFlagConstant   = "-z"
)

// GitExecutor exposes the git invocation used by GitCommandLister.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitCommandLister enumerates tracked files by running `git ls-files -z`.
type GitCommandLister struct {
	executor         GitExecutor
	workingDirectory string
}

// NewGitCommandLister constructs a lister that runs git in workingDirectory.
// An empty working directory runs git in the process working directory.
func NewGitCommandLister(executor GitExecutor, workingDirectory string) (*GitCommandLister, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &GitCommandLister{executor: executor, workingDirectory: workingDirectory}, nil
}

// ListTrackedPaths returns the tracked paths reported by git in index order.
func (lister *GitCommandLister) ListTrackedPaths(executionContext context.Context) ([]string, error) {
	result, executionError := lister.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{listFilesSubcommandConstant, nulTerminatedFlagConstant},
		WorkingDirectory: lister.workingDirectory,
	})
	if executionError != nil {
		return nil, ListingError{Source: ListerKindGit, WorkingDirectory: lister.workingDirectory, Cause: executionError}
	}
	return DecodeTrackedPaths([]byte(result.StandardOutput)), nil
}
