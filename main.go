package main

import (
	"fmt"
	"io"
	"os"

	"github.com/temirov/utf8guard/cmd/cli"
	"github.com/temirov/utf8guard/internal/verify"
)

const (
	exitErrorTemplateConstant = "%v\n"
	successExitCodeConstant   = 0
	failureExitCodeConstant   = 1
)

// main executes the utf8guard command-line application.
func main() {
	os.Exit(run(os.Stderr, cli.Execute))
}

// run maps the application outcome to a process exit code. Failures already explained by the printed report are not repeated on standard error.
func run(errorWriter io.Writer, execute func() error) int {
	executionError := execute()
	if executionError == nil {
		return successExitCodeConstant
	}
	if !verify.IsReportedFailure(executionError) {
		fmt.Fprintf(errorWriter, exitErrorTemplateConstant, executionError)
	}
	return failureExitCodeConstant
}
