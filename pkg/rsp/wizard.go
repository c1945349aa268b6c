package rsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filebundler/pkg/bundle"
	"filebundler/pkg/console"
	"filebundler/pkg/fsutil"

	"go.uber.org/zap"
)

// DefaultFileName is used when the user does not name the response file.
const DefaultFileName = "bundle.rsp"

// ErrInvalidInput wraps every validation failure in the wizard.
var ErrInvalidInput = errors.New("invalid input")

// Answers is the option set collected by the wizard.
type Answers struct {
	Languages        string
	Output           string
	Note             bool
	Sort             bundle.SortKey
	RemoveEmptyLines bool
	Author           string
	FileName         string
}

// Lines returns the response file lines for the answers. Flags that are
// false or empty are omitted.
func (a Answers) Lines() []Line {
	var lines []Line
	add := func(flag, value string) {
		if value != "" {
			lines = append(lines, Line{Flag: flag, Value: value})
		}
	}
	addBool := func(flag string, on bool) {
		if on {
			lines = append(lines, Line{Flag: flag})
		}
	}

	add("language", a.Languages)
	add("output", a.Output)
	addBool("note", a.Note)
	add("sort", string(a.Sort))
	addBool("remove-empty-lines", a.RemoveEmptyLines)
	add("author", a.Author)
	return lines
}

// ValidateLanguages accepts "all" or a comma-separated list of non-empty
// items.
func ValidateLanguages(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("%w: language list cannot be empty", ErrInvalidInput)
	}
	if strings.EqualFold(input, bundle.WildcardLanguage) {
		return nil
	}
	for _, item := range strings.Split(input, ",") {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("%w: language list %q contains an empty entry", ErrInvalidInput, input)
		}
	}
	return nil
}

// LineReader reads one line of user input.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

// Wizard asks for bundle options one at a time.
type Wizard struct {
	reader  LineReader
	printer *console.Printer
	logger  *zap.Logger
}

// NewWizard returns a Wizard reading answers from in and printing prompts
// through printer.
func NewWizard(in io.Reader, printer *console.Printer, logger *zap.Logger) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{reader: bufio.NewReader(in), printer: printer, logger: logger}
}

// Collect prompts for every option. It stops at the first invalid answer and
// returns an error wrapping ErrInvalidInput.
func (w *Wizard) Collect() (Answers, error) {
	var a Answers

	languages, err := w.ask("Enter languages to include (comma-separated, or 'all'): ")
	if err != nil {
		return Answers{}, err
	}
	if err := ValidateLanguages(languages); err != nil {
		return Answers{}, err
	}
	a.Languages = normalizeLanguages(languages)

	a.Output, err = w.ask("Enter the output file path: ")
	if err != nil {
		return Answers{}, err
	}
	if a.Output == "" {
		return Answers{}, fmt.Errorf("%w: output path cannot be empty", ErrInvalidInput)
	}

	if a.Note, err = w.askYesNo("Include source file path as a comment? (y/n): "); err != nil {
		return Answers{}, err
	}

	sortInput, err := w.ask("Sort files by 'name' or 'extension' (default name): ")
	if err != nil {
		return Answers{}, err
	}
	if a.Sort, err = bundle.ParseSortKey(sortInput); err != nil {
		return Answers{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if a.RemoveEmptyLines, err = w.askYesNo("Remove empty lines? (y/n): "); err != nil {
		return Answers{}, err
	}

	if a.Author, err = w.ask("Enter author name (optional): "); err != nil {
		return Answers{}, err
	}

	if a.FileName, err = w.ask(fmt.Sprintf("Enter response file name (default %s): ", DefaultFileName)); err != nil {
		return Answers{}, err
	}
	if a.FileName == "" {
		a.FileName = DefaultFileName
	}

	w.logger.Debug("Collected response file answers",
		zap.String("languages", a.Languages),
		zap.String("output", a.Output),
		zap.String("sort", string(a.Sort)),
		zap.String("fileName", a.FileName))
	return a, nil
}

// Run collects answers and writes the response file relative to dir. It
// returns the absolute path of the written file. Nothing is written when
// any answer is invalid.
func (w *Wizard) Run(dir string) (string, error) {
	a, err := w.Collect()
	if err != nil {
		return "", err
	}

	path := a.FileName
	if filepath.Ext(path) == "" {
		path += ".rsp"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", bundle.ErrDirectoryNotFound, filepath.Dir(path))
	}

	if err := fsutil.WriteFile(path, []byte(Format(a.Lines()))); err != nil {
		w.logger.Error("Failed to write response file", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to write response file: %w", err)
	}
	w.logger.Debug("Wrote response file", zap.String("path", path))
	return path, nil
}

// ask prints a prompt and returns the trimmed answer. Input that ends
// without a newline is accepted; end of input with nothing typed is an
// error.
func (w *Wizard) ask(prompt string) (string, error) {
	w.printer.Prompt(prompt)
	line, err := w.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// askYesNo returns true for "y" or "yes" in any case, false otherwise.
func (w *Wizard) askYesNo(prompt string) (bool, error) {
	answer, err := w.ask(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func normalizeLanguages(input string) string {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, bundle.WildcardLanguage) {
		return bundle.WildcardLanguage
	}
	items := strings.Split(input, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return strings.Join(items, ",")
}
