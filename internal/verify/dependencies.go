package verify

import (
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/temirov/utf8guard/internal/execshell"
	"github.com/temirov/utf8guard/internal/filesystem"
	"github.com/temirov/utf8guard/internal/tracked"
)

// FileSystem exposes the file operations needed to inspect tracked files.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	Open(path string) (io.ReadCloser, error)
}

// ResolveFileSystem returns the provided file system or an OS-backed default.
func ResolveFileSystem(existing FileSystem) FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing tracked.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (tracked.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveLister returns the provided lister or builds the lister selected by kind.
func ResolveLister(existing tracked.Lister, kind tracked.ListerKind, executor tracked.GitExecutor, workingDirectory string) (tracked.Lister, error) {
	if existing != nil {
		return existing, nil
	}
	return tracked.NewLister(kind, executor, workingDirectory)
}
