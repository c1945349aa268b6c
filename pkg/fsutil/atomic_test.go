package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entries lists the names in dir, used to check that no temp or lock files
// are left behind.
func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	require.NoError(t, WriteFile(target, []byte("hello\n")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.Equal(t, []string{"out.txt"}, entries(t, dir))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteFileReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(target, []byte("old content"), 0644))

	require.NoError(t, WriteFile(target, []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestAtomicFileCloseWithoutCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	af, err := CreateAtomic(target)
	require.NoError(t, err)
	_, err = af.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, af.Close())

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, entries(t, dir))
}

func TestAtomicFileWriteAfterCommit(t *testing.T) {
	dir := t.TempDir()
	af, err := CreateAtomic(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	require.NoError(t, af.Commit())

	_, err = af.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NoError(t, af.Close())
	assert.ErrorIs(t, af.Commit(), os.ErrClosed)
}

func TestCreateAtomicMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := CreateAtomic(filepath.Join(dir, "missing", "out.txt"))
	assert.Error(t, err)
}

func TestAtomicFileTempNameFollowsTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	af, err := CreateAtomic(target)
	require.NoError(t, err)
	defer af.Close()

	assert.Equal(t, target, af.Path())
	for _, name := range entries(t, dir) {
		assert.True(t, IsArtifact(filepath.Join(dir, name), target), name)
	}
}

func TestIsArtifact(t *testing.T) {
	target := filepath.Join("work", "out.txt")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join("work", "out.txt.lock"), true},
		{filepath.Join("work", ".out.txt.tmp-42"), true},
		{filepath.Join("work", "out.txt"), false},
		{filepath.Join("work", "other.txt.lock"), false},
		{filepath.Join("work", ".tmp-42"), false},
		{filepath.Join("elsewhere", "out.txt.lock"), false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArtifact(tt.path, target))
		})
	}
}
