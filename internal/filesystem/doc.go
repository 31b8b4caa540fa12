// Package filesystem provides the operating system backed reader used to load tracked file contents.
package filesystem
