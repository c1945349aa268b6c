package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"filebundler/pkg/ignore"

	"go.uber.org/zap"
)

// FileEntry is a file found in the bundled directory.
type FileEntry struct {
	Name string // Base name.
	Path string // Absolute path.
}

// Selection is the outcome of filtering a directory listing.
type Selection struct {
	Files    []FileEntry // Files to bundle, in listing order.
	Excluded []string    // Names removed by exclude patterns.
	Binary   []string    // Names removed because they look binary.
}

// ListFiles returns the regular files directly inside dir, in the order
// os.ReadDir yields them (sorted by name). Directories are skipped and
// symlinks are followed to decide whether they point at a regular file.
func ListFiles(dir string, logger *zap.Logger) ([]FileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("Failed to read directory", zap.String("directory", dir), zap.Error(err))
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegular(entry, path) {
			logger.Debug("Skipping non-regular entry", zap.String("path", path))
			continue
		}
		files = append(files, FileEntry{Name: entry.Name(), Path: path})
	}

	logger.Debug("Listed directory", zap.String("directory", dir), zap.Int("fileCount", len(files)))
	return files, nil
}

func isRegular(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SelectFiles applies the language filter, exclude patterns and, when
// skipBinary is set, binary detection. The listing order is preserved.
func SelectFiles(files []FileEntry, filter LanguageFilter, excludes *ignore.Matcher, skipBinary bool, logger *zap.Logger) (Selection, error) {
	var sel Selection
	for _, f := range files {
		if !filter.Match(f.Name) {
			continue
		}
		if excludes != nil && excludes.Matches(f.Name) {
			logger.Debug("File matches exclude pattern", zap.String("file", f.Name))
			sel.Excluded = append(sel.Excluded, f.Name)
			continue
		}
		if skipBinary {
			binary, err := isBinaryFile(f.Path)
			if err != nil {
				logger.Error("Failed to check if file is binary", zap.String("file", f.Path), zap.Error(err))
				return Selection{}, fmt.Errorf("failed to inspect %s: %w", f.Name, err)
			}
			if binary {
				logger.Debug("File is binary", zap.String("file", f.Name))
				sel.Binary = append(sel.Binary, f.Name)
				continue
			}
		}
		sel.Files = append(sel.Files, f)
	}
	return sel, nil
}
