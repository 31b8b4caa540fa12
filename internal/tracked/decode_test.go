package tracked_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/utf8guard/internal/tracked"
)

func TestDecodeTrackedPaths(testInstance *testing.T) {
	testCases := []struct {
		name          string
		rawListing    []byte
		expectedPaths []string
	}{
		{
			name:          "empty_listing",
			rawListing:    []byte{},
			expectedPaths: []string{},
		},
		{
			name:          "trailing_delimiter",
			rawListing:    []byte("README.md\x00src/main.go\x00"),
			expectedPaths: []string{"README.md", "src/main.go"},
		},
		{
			name:          "empty_entries_dropped",
			rawListing:    []byte("\x00a.txt\x00\x00b.txt"),
			expectedPaths: []string{"a.txt", "b.txt"},
		},
		{
			name:          "names_with_spaces_and_newlines",
			rawListing:    []byte("my notes.txt\x00line\nbreak.txt\x00"),
			expectedPaths: []string{"my notes.txt", "line\nbreak.txt"},
		},
		{
			name:          "non_utf8_bytes_preserved",
			rawListing:    []byte("caf\xe9.txt\x00"),
			expectedPaths: []string{"caf\xe9.txt"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPaths, tracked.DecodeTrackedPaths(testCase.rawListing))
		})
	}
}

func TestDecodedNonUTF8PathReopensFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	rawName := []byte("latin1-caf\xe9.txt")
	filePath := filepath.Join(temporaryDirectory, string(rawName))
	if writeError := os.WriteFile(filePath, []byte("hello"), 0o600); writeError != nil {
		testInstance.Skipf("file system rejects non UTF-8 names: %v", writeError)
	}

	decodedPaths := tracked.DecodeTrackedPaths(append(append([]byte{}, rawName...), 0))
	require.Len(testInstance, decodedPaths, 1)

	content, readError := os.ReadFile(filepath.Join(temporaryDirectory, decodedPaths[0]))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "hello", string(content))
}
