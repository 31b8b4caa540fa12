// Package verify checks that every tracked text file in a repository is valid UTF-8.
//
// The Service enumerates tracked paths through a tracked.Lister, treats any
// file containing a NUL byte as binary and skips it, strictly validates the
// remaining files with golang.org/x/text and prints a report. Files above the
// configured streaming threshold are validated without loading them into
// memory. CommandBuilder wires the Service into a cobra command.
package verify
