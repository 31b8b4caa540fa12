package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/utf8guard/internal/tracked"
)

const (
	currentDirectoryConstant            = "."
	pathClassifiedMessageConstant       = "Classified tracked file"
	unreadableFileMessageConstant       = "Tracked file could not be read"
	verificationSummaryMessageConstant  = "Verified tracked files"
	logFieldPathConstant                = "path"
	logFieldClassificationConstant      = "classification"
	logFieldStreamedConstant            = "streamed"
	logFieldTrackedCountConstant        = "tracked_files"
	logFieldBinaryCountConstant         = "binary_files"
	logFieldInvalidCountConstant        = "invalid_files"
	logFieldUnreadableCountConstant     = "unreadable_files"
	reportWriteErrorTemplateConstant    = "unable to write verification report: %w"
	closeAfterReadErrorTemplateConstant = "close failed: %w"
)

// Service validates the encoding of tracked files and reports the outcome.
type Service struct {
	logger       *zap.Logger
	lister       tracked.Lister
	fileSystem   FileSystem
	outputWriter io.Writer
}

// NewService constructs a Service. A nil logger is replaced by a no-op logger and a nil writer discards output.
func NewService(logger *zap.Logger, lister tracked.Lister, fileSystem FileSystem, outputWriter io.Writer) (*Service, error) {
	if lister == nil {
		return nil, ErrListerNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{logger: logger, lister: lister, fileSystem: fileSystem, outputWriter: outputWriter}, nil
}

// Run enumerates tracked files, classifies each once in enumeration order and prints the report.
// Listing failures and, under the abort policy, unreadable files end the run before any report is printed.
// A printed report with offending files yields ErrEncodingViolations or ErrUnreadableFiles.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (Report, error) {
	trackedPaths, listError := service.lister.ListTrackedPaths(executionContext)
	if listError != nil {
		return Report{}, listError
	}

	report := Report{Results: make([]PathResult, 0, len(trackedPaths))}
	for _, trackedPath := range trackedPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return Report{}, contextError
		}

		result, inspectionError := service.inspect(trackedPath, options)
		if inspectionError != nil {
			return Report{}, inspectionError
		}
		report.Results = append(report.Results, result)
	}

	service.logSummary(report)

	if writeError := writeReport(service.outputWriter, report); writeError != nil {
		return report, fmt.Errorf(reportWriteErrorTemplateConstant, writeError)
	}

	return report, reportFailure(report)
}

func (service *Service) inspect(trackedPath string, options CommandOptions) (PathResult, error) {
	filePath := resolveFilePath(options.RepositoryPath, trackedPath)

	classification, streamed, classificationError := service.classifyFile(filePath, options.StreamingThresholdBytes)
	if classificationError != nil {
		accessError := FileAccessError{Path: trackedPath, Cause: classificationError}
		if options.ReadFailurePolicy != ReadFailurePolicyReport {
			return PathResult{}, accessError
		}
		service.logger.Warn(unreadableFileMessageConstant, zap.String(logFieldPathConstant, trackedPath), zap.Error(classificationError))
		return PathResult{Path: trackedPath, Classification: ClassificationUnreadable, Failure: accessError}, nil
	}

	service.logger.Debug(
		pathClassifiedMessageConstant,
		zap.String(logFieldPathConstant, trackedPath),
		zap.String(logFieldClassificationConstant, string(classification)),
		zap.Bool(logFieldStreamedConstant, streamed),
	)

	return PathResult{Path: trackedPath, Classification: classification}, nil
}

func (service *Service) classifyFile(filePath string, streamingThresholdBytes int64) (Classification, bool, error) {
	if streamingThresholdBytes > 0 {
		fileInfo, statError := service.fileSystem.Stat(filePath)
		if statError != nil {
			return "", false, statError
		}
		if fileInfo.Size() > streamingThresholdBytes {
			classification, streamError := service.classifyOpenedFile(filePath)
			return classification, true, streamError
		}
	}

	content, readError := service.fileSystem.ReadFile(filePath)
	if readError != nil {
		return "", false, readError
	}
	return ClassifyContent(content), false, nil
}

func (service *Service) classifyOpenedFile(filePath string) (classification Classification, err error) {
	reader, openError := service.fileSystem.Open(filePath)
	if openError != nil {
		return "", openError
	}
	defer func() {
		if closeError := reader.Close(); closeError != nil && err == nil {
			classification, err = "", fmt.Errorf(closeAfterReadErrorTemplateConstant, closeError)
		}
	}()

	return classifyStream(reader)
}

func (service *Service) logSummary(report Report) {
	binaryCount := 0
	for _, result := range report.Results {
		if result.Classification == ClassificationBinary {
			binaryCount++
		}
	}

	service.logger.Info(
		verificationSummaryMessageConstant,
		zap.Int(logFieldTrackedCountConstant, len(report.Results)),
		zap.Int(logFieldBinaryCountConstant, binaryCount),
		zap.Int(logFieldInvalidCountConstant, len(report.InvalidPaths())),
		zap.Int(logFieldUnreadableCountConstant, len(report.UnreadablePaths())),
	)
}

func reportFailure(report Report) error {
	var failures []error
	if len(report.InvalidPaths()) > 0 {
		failures = append(failures, ErrEncodingViolations)
	}
	if len(report.UnreadablePaths()) > 0 {
		failures = append(failures, ErrUnreadableFiles)
	}
	return errors.Join(failures...)
}

func resolveFilePath(repositoryPath string, trackedPath string) string {
	localPath := filepath.FromSlash(trackedPath)
	if len(repositoryPath) == 0 || repositoryPath == currentDirectoryConstant {
		return localPath
	}
	return filepath.Join(repositoryPath, localPath)
}
