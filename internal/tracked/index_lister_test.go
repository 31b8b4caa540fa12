package tracked_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/stretchr/testify/require"

	"github.com/temirov/utf8guard/internal/tracked"
)

const (
	trackedRootFileConstant    = "README.md"
	trackedNestedFileConstant  = "docs/guide.md"
	trackedDeepFileConstant    = "docs/api/index.md"
	untrackedFileConstant      = "scratch.txt"
	nestedDirectoryConstant    = "docs"
	fixtureFileContentConstant = "content\n"
)

func createIndexFixture(testInstance *testing.T) string {
	testInstance.Helper()

	repositoryDirectory := testInstance.TempDir()
	repository, initError := git.PlainInit(repositoryDirectory, false)
	require.NoError(testInstance, initError)

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	for _, relativePath := range []string{trackedRootFileConstant, trackedNestedFileConstant, trackedDeepFileConstant, untrackedFileConstant} {
		absolutePath := filepath.Join(repositoryDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte(fixtureFileContentConstant), 0o600))
	}

	for _, relativePath := range []string{trackedRootFileConstant, trackedNestedFileConstant, trackedDeepFileConstant} {
		_, addError := worktree.Add(relativePath)
		require.NoError(testInstance, addError)
	}

	return repositoryDirectory
}

func TestIndexListerListsTrackedPaths(testInstance *testing.T) {
	repositoryDirectory := createIndexFixture(testInstance)

	testCases := []struct {
		name             string
		workingDirectory string
		expectedPaths    []string
	}{
		{
			name:             "repository_root",
			workingDirectory: repositoryDirectory,
			expectedPaths:    []string{trackedRootFileConstant, trackedDeepFileConstant, trackedNestedFileConstant},
		},
		{
			name:             "subdirectory_relative_paths",
			workingDirectory: filepath.Join(repositoryDirectory, nestedDirectoryConstant),
			expectedPaths:    []string{"api/index.md", "guide.md"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			lister := tracked.NewIndexLister(testCase.workingDirectory)
			paths, listError := lister.ListTrackedPaths(context.Background())
			require.NoError(testInstance, listError)
			require.Equal(testInstance, testCase.expectedPaths, paths)
		})
	}
}

func TestIndexListerRejectsNonRepository(testInstance *testing.T) {
	lister := tracked.NewIndexLister(testInstance.TempDir())
	_, listError := lister.ListTrackedPaths(context.Background())

	var listingError tracked.ListingError
	require.True(testInstance, errors.As(listError, &listingError))
	require.Equal(testInstance, tracked.ListerKindIndex, listingError.Source)
	require.ErrorIs(testInstance, listError, git.ErrRepositoryNotExists)
}

func TestIndexListerHonorsCancellation(testInstance *testing.T) {
	repositoryDirectory := createIndexFixture(testInstance)
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, listError := tracked.NewIndexLister(repositoryDirectory).ListTrackedPaths(cancelledContext)
	require.ErrorIs(testInstance, listError, context.Canceled)
}

func TestIndexListerReturnsConflictedPathOnce(testInstance *testing.T) {
	repositoryDirectory := testInstance.TempDir()
	repository, initError := git.PlainInit(repositoryDirectory, false)
	require.NoError(testInstance, initError)

	conflictedIndex := &index.Index{
		Version: 2,
		Entries: []*index.Entry{
			{Name: "a.txt", Stage: index.AncestorMode, Mode: filemode.Regular, Hash: plumbing.ZeroHash},
			{Name: "a.txt", Stage: index.OurMode, Mode: filemode.Regular, Hash: plumbing.ZeroHash},
			{Name: "a.txt", Stage: index.TheirMode, Mode: filemode.Regular, Hash: plumbing.ZeroHash},
			{Name: "b.txt", Stage: index.Merged, Mode: filemode.Regular, Hash: plumbing.ZeroHash},
		},
	}
	require.NoError(testInstance, repository.Storer.SetIndex(conflictedIndex))

	paths, listError := tracked.NewIndexLister(repositoryDirectory).ListTrackedPaths(context.Background())
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"a.txt", "b.txt"}, paths)
}
