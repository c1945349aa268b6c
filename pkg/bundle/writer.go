package bundle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filebundler/pkg/fsutil"

	"go.uber.org/zap"
)

// Document describes what goes into a bundle.
type Document struct {
	Author           string
	Note             bool
	RemoveEmptyLines bool
	BaseDir          string // Source paths are written relative to this directory.
	Files            []FileEntry
}

// WriteTo streams the document to w: the optional author line, then for each
// file an optional source line, the file line, its content and a blank line.
func (d Document) WriteTo(w io.Writer, logger *zap.Logger) error {
	writer := bufio.NewWriter(w)

	if d.Author != "" {
		if _, err := writer.WriteString(authorLine(d.Author)); err != nil {
			return fmt.Errorf("failed to write author header: %w", err)
		}
	}

	for _, f := range d.Files {
		if err := d.writeFile(writer, f, logger); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush bundle", zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func (d Document) writeFile(writer *bufio.Writer, f FileEntry, logger *zap.Logger) error {
	if d.Note {
		rel, err := filepath.Rel(d.BaseDir, f.Path)
		if err != nil {
			logger.Warn("Unable to determine relative path, using absolute path",
				zap.String("filePath", f.Path), zap.Error(err))
			rel = f.Path
		}
		if _, err := writer.WriteString(sourceLine(rel)); err != nil {
			return fmt.Errorf("failed to write source note for %s: %w", f.Name, err)
		}
	}

	if _, err := writer.WriteString(fileLine(f.Name)); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", f.Name, err)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		logger.Error("Failed to read file", zap.String("filePath", f.Path), zap.Error(err))
		return fmt.Errorf("error reading file %s: %w", f.Name, err)
	}

	content := string(data)
	if d.RemoveEmptyLines {
		content = RemoveEmptyLines(content)
	}

	if _, err := writer.WriteString(content + "\n\n"); err != nil {
		logger.Error("Failed to write content to bundle", zap.String("contentPath", f.Path), zap.Error(err))
		return fmt.Errorf("failed to write content of %s: %w", f.Name, err)
	}

	logger.Debug("Added file to bundle", zap.String("file", f.Name), zap.Int("contentSizeBytes", len(data)))
	return nil
}

// WriteFile writes the document to path atomically. The previous file at
// path, if any, is left untouched on failure.
func (d Document) WriteFile(path string, logger *zap.Logger) error {
	out, err := fsutil.CreateAtomic(path)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return err
	}
	defer out.Close()

	if err := d.WriteTo(out, logger); err != nil {
		return err
	}
	if err := out.Commit(); err != nil {
		logger.Error("Failed to commit output file", zap.String("file", path), zap.Error(err))
		return err
	}
	logger.Debug("Committed output file", zap.String("file", out.Path()))
	return nil
}
