package tracked

import (
	"context"
	"errors"
	"fmt"
)

const (
	listerKindGitStringConstant       = "git"
	listerKindIndexStringConstant     = "index"
	listingErrorTemplateConstant      = "unable to list tracked files with %s in %s: %v"
	unsupportedListerTemplateConstant = "unsupported tracked file lister: %s"
	missingExecutorMessageConstant    = "git command lister requires a git executor"
	currentDirectoryLabelConstant     = "current directory"
)

// ListerKind selects the mechanism used to enumerate tracked files.
type ListerKind string

// Supported lister kinds.
const (
	ListerKindGit   ListerKind = ListerKind(listerKindGitStringConstant)
	ListerKindIndex ListerKind = ListerKind(listerKindIndexStringConstant)
)

// ErrGitExecutorNotConfigured indicates a git command lister was requested without an executor.
var ErrGitExecutorNotConfigured = errors.New(missingExecutorMessageConstant)

// Lister enumerates the tracked paths of a repository.
type Lister interface {
	ListTrackedPaths(executionContext context.Context) ([]string, error)
}

// ListingError reports that the version control system could not enumerate tracked files.
type ListingError struct {
	Source           ListerKind
	WorkingDirectory string
	Cause            error
}

// Error describes the lister, the location and the cause.
func (listingError ListingError) Error() string {
	workingDirectory := listingError.WorkingDirectory
	if len(workingDirectory) == 0 {
		workingDirectory = currentDirectoryLabelConstant
	}
	return fmt.Sprintf(listingErrorTemplateConstant, listingError.Source, workingDirectory, listingError.Cause)
}

// Unwrap exposes the underlying cause.
func (listingError ListingError) Unwrap() error {
	return listingError.Cause
}

// ListerKinds returns the supported lister kinds in display order.
func ListerKinds() []string {
	return []string{listerKindGitStringConstant, listerKindIndexStringConstant}
}

// NewLister builds the lister identified by kind for the working directory.
func NewLister(kind ListerKind, executor GitExecutor, workingDirectory string) (Lister, error) {
	switch kind {
	case ListerKindGit:
		gitLister, gitListerError := NewGitCommandLister(executor, workingDirectory)
		if gitListerError != nil {
			return nil, gitListerError
		}
		return gitLister, nil
	case ListerKindIndex:
		return NewIndexLister(workingDirectory), nil
	default:
		return nil, fmt.Errorf(unsupportedListerTemplateConstant, kind)
	}
}
