package verify_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/utf8guard/internal/execshell"
	"github.com/temirov/utf8guard/internal/verify"
)

const (
	listerFlagConstant          = "--lister"
	readErrorsFlagConstant      = "--read-errors"
	streamThresholdFlagConstant = "--stream-threshold"
	repositoryFlagConstant      = "--repository"
)

type recordingGitExecutor struct {
	output          string
	recordedDetails []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return execshell.ExecutionResult{StandardOutput: executor.output}, nil
}

func executeVerifyCommand(testInstance *testing.T, builder *verify.CommandBuilder, arguments []string) (string, error) {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.ExecuteContext(context.Background())
	return outputBuffer.String(), executionError
}

func TestCommandReportsViolations(testInstance *testing.T) {
	builder := &verify.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		Lister:         &stubLister{paths: []string{validTextPathConstant, binaryPathConstant, latinTextPathConstant}},
		FileSystem:     scenarioFileSystem(),
	}

	output, executionError := executeVerifyCommand(testInstance, builder, nil)
	require.ErrorIs(testInstance, executionError, verify.ErrEncodingViolations)
	require.True(testInstance, verify.IsReportedFailure(executionError))
	require.Equal(testInstance, violationsReportConstant, output)
}

func TestCommandRunsGitListerInRepository(testInstance *testing.T) {
	executor := &recordingGitExecutor{output: validTextPathConstant + "\x00"}
	fileSystem := &stubFileSystem{contents: map[string][]byte{filepath.Join(repositoryRootConstant, validTextPathConstant): []byte("ok")}}
	builder := &verify.CommandBuilder{
		GitExecutor: executor,
		FileSystem:  fileSystem,
	}

	output, executionError := executeVerifyCommand(testInstance, builder, []string{repositoryFlagConstant, repositoryRootConstant})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, allValidReportConstant, output)
	require.Len(testInstance, executor.recordedDetails, 1)
	require.Equal(testInstance, []string{"ls-files", "-z"}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, repositoryRootConstant, executor.recordedDetails[0].WorkingDirectory)
}

func TestCommandOptionPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name           string
		configuration  verify.CommandConfiguration
		arguments      []string
		expectedOutput string
		expectError    bool
		expectReported bool
	}{
		{
			name:           "configuration_report_policy_applies",
			configuration:  verify.CommandConfiguration{Lister: "git", ReadErrors: "REPORT", Repository: "."},
			expectedOutput: "Unreadable tracked files:\n - locked.txt\n",
			expectError:    true,
			expectReported: true,
		},
		{
			name:          "flag_overrides_configuration_policy",
			configuration: verify.CommandConfiguration{Lister: "git", ReadErrors: "report", Repository: "."},
			arguments:     []string{readErrorsFlagConstant, "abort"},
			expectError:   true,
		},
		{
			name:          "invalid_lister_flag_rejected",
			configuration: verify.DefaultCommandConfiguration(),
			arguments:     []string{listerFlagConstant, "svn"},
			expectError:   true,
		},
		{
			name:          "invalid_configured_policy_rejected",
			configuration: verify.CommandConfiguration{Lister: "git", ReadErrors: "ignore"},
			expectError:   true,
		},
		{
			name:          "negative_stream_threshold_rejected",
			configuration: verify.DefaultCommandConfiguration(),
			arguments:     []string{streamThresholdFlagConstant, "-1"},
			expectError:   true,
		},
		{
			name:          "negative_configured_stream_threshold_rejected",
			configuration: verify.CommandConfiguration{Lister: "git", ReadErrors: "abort", StreamingThresholdBytes: -1},
			expectError:   true,
		},
		{
			name:          "positional_arguments_rejected",
			configuration: verify.DefaultCommandConfiguration(),
			arguments:     []string{"extra"},
			expectError:   true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configuration := testCase.configuration
			builder := &verify.CommandBuilder{
				ConfigurationProvider: func() verify.CommandConfiguration { return configuration },
				Lister:                &stubLister{paths: []string{validTextPathConstant, unreadablePathConstant}},
				FileSystem:            scenarioFileSystem(),
			}

			output, executionError := executeVerifyCommand(testInstance, builder, testCase.arguments)
			require.Equal(testInstance, testCase.expectedOutput, output)
			if !testCase.expectError {
				require.NoError(testInstance, executionError)
				return
			}
			require.Error(testInstance, executionError)
			require.Equal(testInstance, testCase.expectReported, verify.IsReportedFailure(executionError))
		})
	}
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	values := verify.DefaultConfigurationValues("verify")
	require.Equal(testInstance, "git", values["verify.lister"])
	require.Equal(testInstance, "abort", values["verify.read_errors"])
	require.Equal(testInstance, int64(0), values["verify.streaming_threshold_bytes"])
	require.Equal(testInstance, ".", values["verify.repository"])
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	sanitized := verify.CommandConfiguration{
		Lister:                  " Index ",
		ReadErrors:              " REPORT",
		StreamingThresholdBytes: -5,
		Repository:              " ./repo ",
	}.Sanitize()

	require.Equal(testInstance, verify.CommandConfiguration{
		Lister:                  "index",
		ReadErrors:              "report",
		StreamingThresholdBytes: -5,
		Repository:              "./repo",
	}, sanitized)
}
