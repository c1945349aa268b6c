// Package rsp reads and writes response files: plain text files holding one
// "--flag [value]" per line that expand back into command-line arguments.
package rsp

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"
)

// Prefix marks a command-line argument that names a response file.
const Prefix = "@"

// ErrMalformedLine is returned for a line with an unclosed quote, a trailing
// escape or an unquoted shell operator.
var ErrMalformedLine = errors.New("malformed response file line")

// Line is a single flag with an optional value.
type Line struct {
	Flag  string // Long flag name without dashes.
	Value string // Empty for boolean flags.
}

// String renders the line as "--flag" or "--flag value", quoting the value
// when it would not survive tokenization as a single word.
func (l Line) String() string {
	if l.Value == "" {
		return "--" + l.Flag
	}
	return "--" + l.Flag + " " + quote(l.Value)
}

// Format renders lines, one per row, with a trailing newline.
func Format(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Characters the tokenizer treats specially outside double quotes.
const shellSpecial = "\"'\\`$;&|<>()#"

func quote(v string) string {
	if !strings.ContainsAny(v, shellSpecial) && strings.IndexFunc(v, unicode.IsSpace) < 0 {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}

// Tokenize splits response file content into arguments, one line at a time.
// Words follow shell rules: single or double quotes group a value and a
// backslash escapes the next character. Lines whose first non-blank
// character is '#' are comments.
func Tokenize(content string) ([]string, error) {
	var tokens []string
	for lineNo, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		words, err := splitWords(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		tokens = append(tokens, words...)
	}
	return tokens, nil
}

func splitWords(line string) ([]string, error) {
	p := shellwords.NewParser()
	words, err := p.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	// Parse stops at an unquoted operator such as ';' or '|'.
	if p.Position > 0 {
		return nil, fmt.Errorf("%w: unquoted shell operator in %q", ErrMalformedLine, line)
	}
	return words, nil
}

// ExpandArgs replaces every "@path" argument with the tokens read from that
// file. Arguments inside a response file are not expanded again. A lone "@"
// is kept as is, as is everything after "--".
//
// takesValue is called with each argument in order, including the tokens of
// expanded files, and reports whether it is a flag that consumes the next
// argument as its value. Such a value is never treated as a response file.
// takesValue may be nil.
func ExpandArgs(args []string, takesValue func(arg string) bool) ([]string, error) {
	if takesValue == nil {
		takesValue = func(string) bool { return false }
	}

	expanded := make([]string, 0, len(args))
	pendingValue := false
	for i, arg := range args {
		switch {
		case pendingValue:
			expanded = append(expanded, arg)
			pendingValue = false
			continue
		case arg == "--":
			return append(expanded, args[i:]...), nil
		case !strings.HasPrefix(arg, Prefix) || len(arg) == len(Prefix):
			expanded = append(expanded, arg)
			pendingValue = takesValue(arg)
			continue
		}

		path := strings.TrimPrefix(arg, Prefix)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read response file: %w", err)
		}
		tokens, err := Tokenize(strings.ReplaceAll(string(data), "\r\n", "\n"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse response file %s: %w", path, err)
		}
		for _, tok := range tokens {
			if pendingValue {
				pendingValue = false
				continue
			}
			pendingValue = takesValue(tok)
		}
		expanded = append(expanded, tokens...)
	}
	return expanded, nil
}
