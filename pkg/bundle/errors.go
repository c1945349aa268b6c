package bundle

import (
	"errors"
	"io/fs"
	"os"
)

var (
	// ErrDirectoryNotFound means the directory of the output path is missing.
	ErrDirectoryNotFound = errors.New("the specified directory does not exist")
	// ErrNoMatchingFiles means the filter selected nothing; no output is written.
	ErrNoMatchingFiles = errors.New("no matching code files found")
	// ErrNoLanguages means the language filter was empty.
	ErrNoLanguages = errors.New(`at least one language or "all" is required`)
)

// IsIOError reports whether err was caused by a filesystem operation.
func IsIOError(err error) bool {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var sysErr *os.SyscallError
	return errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &sysErr)
}
