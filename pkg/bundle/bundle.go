// Package bundle concatenates the source files of a single directory into
// one annotated text file.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filebundler/pkg/fsutil"
	"filebundler/pkg/ignore"

	"go.uber.org/zap"
)

// Result describes a completed run.
type Result struct {
	OutputPath string   // Absolute path of the written bundle.
	Files      []string // Bundled file names, in output order.
	Excluded   []string // Names removed by exclude patterns.
	Binary     []string // Names removed as binary.
}

// Run bundles the files of opts.WorkDir into opts.Output.
//
// It returns ErrDirectoryNotFound when the output directory is missing and
// ErrNoMatchingFiles, without creating any output, when nothing passes the
// filters. Filesystem failures are returned wrapped and satisfy IsIOError.
func Run(opts Options, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	workDir, err := resolveWorkDir(opts.WorkDir)
	if err != nil {
		logger.Error("Failed to resolve directory path", zap.Error(err))
		return Result{}, err
	}

	filter, err := ParseLanguages(opts.Languages)
	if err != nil {
		return Result{}, err
	}
	sortKey, err := ParseSortKey(string(opts.Sort))
	if err != nil {
		return Result{}, err
	}

	outputPath, err := ResolveOutputPath(opts.Output, workDir)
	if err != nil {
		return Result{}, err
	}
	if err := checkOutputDir(outputPath); err != nil {
		logger.Error("Output directory is invalid", zap.String("outputFile", outputPath), zap.Error(err))
		return Result{}, err
	}

	logger.Debug("Starting bundle process",
		zap.String("directory", workDir),
		zap.String("outputFile", outputPath),
		zap.Bool("allLanguages", filter.All()),
		zap.Strings("languages", filter.Extensions()),
		zap.String("sort", string(sortKey)))

	excludes, err := loadExcludes(opts, logger)
	if err != nil {
		return Result{}, err
	}

	listed, err := ListFiles(workDir, logger)
	if err != nil {
		return Result{}, err
	}
	listed = withoutOutput(listed, outputPath)

	sel, err := SelectFiles(listed, filter, excludes, opts.SkipBinary, logger)
	if err != nil {
		return Result{}, err
	}
	if len(sel.Files) == 0 {
		logger.Debug("No files to process after filtering")
		return Result{Excluded: sel.Excluded, Binary: sel.Binary}, ErrNoMatchingFiles
	}

	SortFiles(sel.Files, sortKey)

	doc := Document{
		Author:           opts.Author,
		Note:             opts.Note,
		RemoveEmptyLines: opts.RemoveEmptyLines,
		BaseDir:          workDir,
		Files:            sel.Files,
	}
	if err := doc.WriteFile(outputPath, logger); err != nil {
		return Result{}, fmt.Errorf("failed to write bundle: %w", err)
	}

	names := make([]string, len(sel.Files))
	for i, f := range sel.Files {
		names[i] = f.Name
	}

	logger.Debug("Bundle process completed",
		zap.String("outputFile", outputPath),
		zap.Int("totalFiles", len(names)),
		zap.Duration("elapsed", time.Since(startTime)))

	return Result{
		OutputPath: outputPath,
		Files:      names,
		Excluded:   sel.Excluded,
		Binary:     sel.Binary,
	}, nil
}

// ResolveOutputPath returns the absolute output path. A bare file name is
// placed in workDir, as is any other relative path.
func ResolveOutputPath(output, workDir string) (string, error) {
	if output == "" {
		return "", fmt.Errorf("output path is required")
	}
	if filepath.IsAbs(output) {
		return filepath.Clean(output), nil
	}
	return filepath.Join(workDir, output), nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

func checkOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}
	return nil
}

// loadExcludes compiles --exclude patterns and the ignore file, if any.
func loadExcludes(opts Options, logger *zap.Logger) (*ignore.Matcher, error) {
	if len(opts.Exclude) == 0 && opts.IgnoreFile == "" {
		return nil, nil
	}

	m := ignore.New(logger)
	if opts.IgnoreFile != "" {
		if err := m.AddFile(opts.IgnoreFile); err != nil {
			return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
		}
	}
	m.AddLines(opts.Exclude...)
	logger.Debug("Loaded exclude patterns", zap.Int("totalPatterns", m.Len()))
	return m, nil
}

// withoutOutput drops the previous bundle at path and any lock or temporary
// file left over from an interrupted write to it.
func withoutOutput(files []FileEntry, path string) []FileEntry {
	out := files[:0]
	for _, f := range files {
		if f.Path == path || fsutil.IsArtifact(f.Path, path) {
			continue
		}
		out = append(out, f)
	}
	return out
}
