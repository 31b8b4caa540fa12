package verify

import (
	"errors"
	"fmt"
)

const (
	encodingViolationsMessageConstant      = "tracked files are not valid UTF-8"
	unreadableFilesMessageConstant         = "tracked files could not be read"
	listerNotConfiguredMessageConstant     = "verification service requires a tracked file lister"
	fileSystemNotConfiguredMessageConstant = "verification service requires a file system"
	fileAccessErrorTemplateConstant        = "unable to read tracked file %s: %v"
)

var (
	// ErrEncodingViolations indicates at least one tracked text file is not valid UTF-8.
	ErrEncodingViolations = errors.New(encodingViolationsMessageConstant)

	// ErrUnreadableFiles indicates tracked files were reported as unreadable.
	ErrUnreadableFiles = errors.New(unreadableFilesMessageConstant)

	// ErrListerNotConfigured indicates NewService received a nil lister.
	ErrListerNotConfigured = errors.New(listerNotConfiguredMessageConstant)

	// ErrFileSystemNotConfigured indicates NewService received a nil file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// FileAccessError reports a tracked file that could not be opened or read.
type FileAccessError struct {
	Path  string
	Cause error
}

// Error describes the path and the cause.
func (accessError FileAccessError) Error() string {
	return fmt.Sprintf(fileAccessErrorTemplateConstant, accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying cause.
func (accessError FileAccessError) Unwrap() error {
	return accessError.Cause
}

// IsReportedFailure reports whether err is a failure already explained by the printed report.
func IsReportedFailure(err error) bool {
	return errors.Is(err, ErrEncodingViolations) || errors.Is(err, ErrUnreadableFiles)
}
