package verify

import (
	"fmt"
	"io"
)

const (
	violationsHeaderConstant     = "Non-UTF-8 files found:"
	unreadableHeaderConstant     = "Unreadable tracked files:"
	reportEntryTemplateConstant  = " - %s\n"
	allFilesValidMessageConstant = "All tracked text files are UTF-8."
)

// writeReport prints the offending paths in enumeration order, or the success line when there are none.
func writeReport(writer io.Writer, report Report) error {
	invalidPaths := report.InvalidPaths()
	unreadablePaths := report.UnreadablePaths()

	if len(invalidPaths) == 0 && len(unreadablePaths) == 0 {
		_, writeError := fmt.Fprintln(writer, allFilesValidMessageConstant)
		return writeError
	}

	if len(invalidPaths) > 0 {
		if sectionError := writeSection(writer, violationsHeaderConstant, invalidPaths); sectionError != nil {
			return sectionError
		}
	}

	if len(unreadablePaths) > 0 {
		return writeSection(writer, unreadableHeaderConstant, unreadablePaths)
	}

	return nil
}

func writeSection(writer io.Writer, header string, paths []string) error {
	if _, headerError := fmt.Fprintln(writer, header); headerError != nil {
		return headerError
	}
	for _, path := range paths {
		if _, entryError := fmt.Fprintf(writer, reportEntryTemplateConstant, path); entryError != nil {
			return entryError
		}
	}
	return nil
}
