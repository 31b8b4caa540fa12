// Package tracked enumerates the files recorded in a Git index.
//
// GitCommandLister asks the git binary for `git ls-files -z` through the
// execshell executor, while IndexLister reads the index directly with
// go-git. Both return paths relative to the configured working directory in
// index order. Path names are decoded leniently: whatever bytes Git reports
// are kept verbatim so every path can be reopened even when it is not valid
// UTF-8.
package tracked
