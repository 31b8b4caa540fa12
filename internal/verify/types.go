package verify

import (
	"github.com/temirov/utf8guard/internal/tracked"
)

const (
	classificationBinaryConstant      = "binary"
	classificationValidTextConstant   = "valid_text"
	classificationInvalidTextConstant = "invalid_text"
	classificationUnreadableConstant  = "unreadable"
	readFailurePolicyAbortConstant    = "abort"
	readFailurePolicyReportConstant   = "report"
)

// Classification describes the outcome of inspecting one tracked file.
type Classification string

// Supported classifications.
const (
	ClassificationBinary      Classification = Classification(classificationBinaryConstant)
	ClassificationValidText   Classification = Classification(classificationValidTextConstant)
	ClassificationInvalidText Classification = Classification(classificationInvalidTextConstant)
	ClassificationUnreadable  Classification = Classification(classificationUnreadableConstant)
)

// ReadFailurePolicy controls how unreadable tracked files affect a run.
type ReadFailurePolicy string

// Supported read failure policies.
const (
	ReadFailurePolicyAbort  ReadFailurePolicy = ReadFailurePolicy(readFailurePolicyAbortConstant)
	ReadFailurePolicyReport ReadFailurePolicy = ReadFailurePolicy(readFailurePolicyReportConstant)
)

// ReadFailurePolicies returns the supported policies in display order.
func ReadFailurePolicies() []string {
	return []string{readFailurePolicyAbortConstant, readFailurePolicyReportConstant}
}

// CommandOptions configures a single verification run.
type CommandOptions struct {
	ListerKind              tracked.ListerKind
	ReadFailurePolicy       ReadFailurePolicy
	StreamingThresholdBytes int64
	RepositoryPath          string
}

// PathResult records the classification of one tracked path.
type PathResult struct {
	Path           string
	Classification Classification
	Failure        error
}

// Report holds every path result of a run in enumeration order.
type Report struct {
	Results []PathResult
}

// InvalidPaths returns the paths classified as invalid text.
func (report Report) InvalidPaths() []string {
	return report.pathsWithClassification(ClassificationInvalidText)
}

// UnreadablePaths returns the paths that could not be read.
func (report Report) UnreadablePaths() []string {
	return report.pathsWithClassification(ClassificationUnreadable)
}

// Passed reports whether every tracked file is binary or valid text.
func (report Report) Passed() bool {
	for _, result := range report.Results {
		if result.Classification == ClassificationInvalidText || result.Classification == ClassificationUnreadable {
			return false
		}
	}
	return true
}

func (report Report) pathsWithClassification(classification Classification) []string {
	paths := make([]string, 0)
	for _, result := range report.Results {
		if result.Classification == classification {
			paths = append(paths, result.Path)
		}
	}
	return paths
}
