package tracked

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

const (
	defaultWorkingDirectoryConstant = "."
	indexPathSeparatorConstant      = "/"
)

// IndexLister enumerates tracked files by reading the repository index with go-git.
// It does not require the git binary.
type IndexLister struct {
	workingDirectory string
}

// NewIndexLister constructs a lister rooted at workingDirectory.
// The repository is discovered by walking upward from that directory.
func NewIndexLister(workingDirectory string) *IndexLister {
	return &IndexLister{workingDirectory: workingDirectory}
}

// ListTrackedPaths returns index entries under the working directory, relative to it.
// Entries recorded in several conflict stages are returned once.
func (lister *IndexLister) ListTrackedPaths(executionContext context.Context) ([]string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, lister.wrap(contextError)
	}

	workingDirectory := lister.workingDirectory
	if len(workingDirectory) == 0 {
		workingDirectory = defaultWorkingDirectoryConstant
	}

	absoluteWorkingDirectory, absoluteError := resolveDirectory(workingDirectory)
	if absoluteError != nil {
		return nil, lister.wrap(absoluteError)
	}

	repository, openError := git.PlainOpenWithOptions(absoluteWorkingDirectory, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return nil, lister.wrap(openError)
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return nil, lister.wrap(worktreeError)
	}

	worktreeRoot, rootError := resolveDirectory(worktree.Filesystem.Root())
	if rootError != nil {
		return nil, lister.wrap(rootError)
	}

	relativePrefix, prefixError := filepath.Rel(worktreeRoot, absoluteWorkingDirectory)
	if prefixError != nil {
		return nil, lister.wrap(prefixError)
	}
	relativePrefix = filepath.ToSlash(relativePrefix)
	if relativePrefix == defaultWorkingDirectoryConstant {
		relativePrefix = ""
	} else {
		relativePrefix += indexPathSeparatorConstant
	}

	index, indexError := repository.Storer.Index()
	if indexError != nil {
		return nil, lister.wrap(indexError)
	}

	paths := make([]string, 0, len(index.Entries))
	seenPaths := make(map[string]struct{}, len(index.Entries))
	for _, entry := range index.Entries {
		if !strings.HasPrefix(entry.Name, relativePrefix) {
			continue
		}
		if _, seen := seenPaths[entry.Name]; seen {
			continue
		}
		seenPaths[entry.Name] = struct{}{}
		paths = append(paths, strings.TrimPrefix(entry.Name, relativePrefix))
	}

	return paths, nil
}

func (lister *IndexLister) wrap(cause error) error {
	return ListingError{Source: ListerKindIndex, WorkingDirectory: lister.workingDirectory, Cause: cause}
}

func resolveDirectory(directory string) (string, error) {
	absoluteDirectory, absoluteError := filepath.Abs(directory)
	if absoluteError != nil {
		return "", absoluteError
	}
	return filepath.EvalSymlinks(absoluteDirectory)
}
