package tracked_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/utf8guard/internal/execshell"
	"github.com/temirov/utf8guard/internal/tracked"
)

const (
	testWorkingDirectoryConstant = "/tmp/repository"
	testListingOutputConstant    = "README.md\x00docs/caf\xe9.txt\x00"
)

type stubGitExecutor struct {
	result          execshell.ExecutionResult
	err             error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.err != nil {
		return execshell.ExecutionResult{}, executor.err
	}
	return executor.result, nil
}

func TestGitCommandListerListsTrackedPaths(testInstance *testing.T) {
	executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: testListingOutputConstant}}
	lister, listerError := tracked.NewGitCommandLister(executor, testWorkingDirectoryConstant)
	require.NoError(testInstance, listerError)

	paths, listError := lister.ListTrackedPaths(context.Background())
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"README.md", "docs/caf\xe9.txt"}, paths)

	require.Len(testInstance, executor.recordedDetails, 1)
	require.Equal(testInstance, []string{"ls-files", "-z"}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, testWorkingDirectoryConstant, executor.recordedDetails[0].WorkingDirectory)
}

func TestGitCommandListerWrapsFailures(testInstance *testing.T) {
	commandFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"ls-files", "-z"}}},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
	}
	executor := &stubGitExecutor{err: commandFailure}
	lister, listerError := tracked.NewGitCommandLister(executor, testWorkingDirectoryConstant)
	require.NoError(testInstance, listerError)

	paths, listError := lister.ListTrackedPaths(context.Background())
	require.Nil(testInstance, paths)

	var listingError tracked.ListingError
	require.True(testInstance, errors.As(listError, &listingError))
	require.Equal(testInstance, tracked.ListerKindGit, listingError.Source)
	require.Equal(testInstance, testWorkingDirectoryConstant, listingError.WorkingDirectory)

	var failedError execshell.CommandFailedError
	require.True(testInstance, errors.As(listError, &failedError))
	require.Equal(testInstance, 128, failedError.Result.ExitCode)
	require.Contains(testInstance, listError.Error(), "not a git repository")
}

func TestNewGitCommandListerRequiresExecutor(testInstance *testing.T) {
	_, listerError := tracked.NewGitCommandLister(nil, testWorkingDirectoryConstant)
	require.ErrorIs(testInstance, listerError, tracked.ErrGitExecutorNotConfigured)
}

func TestNewListerSelectsImplementation(testInstance *testing.T) {
	executor := &stubGitExecutor{}

	gitLister, gitError := tracked.NewLister(tracked.ListerKindGit, executor, testWorkingDirectoryConstant)
	require.NoError(testInstance, gitError)
	require.IsType(testInstance, &tracked.GitCommandLister{}, gitLister)

	indexLister, indexError := tracked.NewLister(tracked.ListerKindIndex, nil, testWorkingDirectoryConstant)
	require.NoError(testInstance, indexError)
	require.IsType(testInstance, &tracked.IndexLister{}, indexLister)

	missingExecutorLister, missingExecutorError := tracked.NewLister(tracked.ListerKindGit, nil, testWorkingDirectoryConstant)
	require.ErrorIs(testInstance, missingExecutorError, tracked.ErrGitExecutorNotConfigured)
	require.Nil(testInstance, missingExecutorLister)

	_, unsupportedError := tracked.NewLister(tracked.ListerKind("svn"), executor, testWorkingDirectoryConstant)
	require.Error(testInstance, unsupportedError)
}
