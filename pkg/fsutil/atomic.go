// Package fsutil provides locked, atomic file writes: content goes to a
// temporary file in the target directory and is renamed into place, so
// readers never observe a partially written file.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// AtomicFile is an io.WriteCloser whose content only becomes visible at its
// target path after Commit. Close without Commit discards the content.
type AtomicFile struct {
	path     string
	tempPath string
	file     *os.File
	lock     *flock.Flock
	done     bool
}

// Suffixes of the files CreateAtomic keeps next to its target while writing.
const (
	lockSuffix = ".lock"
	tempInfix  = ".tmp-"
)

// IsArtifact reports whether path is the lock file or a temporary file that
// CreateAtomic uses for target. Such files are left behind only when a
// process dies mid-write.
func IsArtifact(path, target string) bool {
	if filepath.Dir(path) != filepath.Dir(target) {
		return false
	}
	name, base := filepath.Base(path), filepath.Base(target)
	return name == base+lockSuffix || strings.HasPrefix(name, "."+base+tempInfix)
}

// CreateAtomic locks path (via "<path>.lock") and opens a temporary file
// ".<name>.tmp-*" next to it. The parent directory must already exist.
func CreateAtomic(path string) (*AtomicFile, error) {
	lock := flock.New(path + lockSuffix)
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+tempInfix+"*")
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &AtomicFile{
		path:     path,
		tempPath: tempFile.Name(),
		file:     tempFile,
		lock:     lock,
	}, nil
}

// Path returns the final target path.
func (a *AtomicFile) Path() string { return a.path }

// Write writes to the temporary file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.done {
		return 0, os.ErrClosed
	}
	return a.file.Write(p)
}

// Commit syncs the temporary file and renames it onto the target path.
func (a *AtomicFile) Commit() error {
	if a.done {
		return os.ErrClosed
	}
	a.done = true
	defer releaseLock(a.lock)

	if err := a.file.Sync(); err != nil {
		a.discard()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := a.file.Close(); err != nil {
		os.Remove(a.tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(a.tempPath, 0644); err != nil {
		os.Remove(a.tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(a.tempPath, a.path); err != nil {
		os.Remove(a.tempPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", a.path, err)
	}
	return nil
}

// Close discards uncommitted content and releases the lock. It is a no-op
// after Commit.
func (a *AtomicFile) Close() error {
	if a.done {
		return nil
	}
	a.done = true
	a.discard()
	releaseLock(a.lock)
	return nil
}

func (a *AtomicFile) discard() {
	a.file.Close()
	os.Remove(a.tempPath)
}

// releaseLock unlocks and removes the lock file so no ".lock" artifacts are
// left next to the target.
func releaseLock(lock *flock.Flock) {
	_ = lock.Unlock()
	_ = os.Remove(lock.Path())
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	af, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	defer af.Close()

	if _, err := af.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	return af.Commit()
}
