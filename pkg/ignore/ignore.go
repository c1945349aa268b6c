// Package ignore matches file paths against gitignore-style exclude patterns.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
	singleStar         = regexp.MustCompile(`\*`)
)

// Pattern is a compiled exclude pattern and the line it came from.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled regular expression for the pattern.
	Negate bool           // Pattern started with '!'.
	Line   string         // Original pattern line.
	LineNo int            // 1-based position in its source.
}

// Matcher holds an ordered list of patterns. Later patterns override
// earlier ones, so a negated pattern can re-include a path.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.patterns) }

// AddLines compiles pattern lines. Blank lines and '#' comments are skipped.
func (m *Matcher) AddLines(lines ...string) {
	for i, line := range lines {
		re, negate := parseLine(line)
		if re == nil {
			continue
		}
		p := &Pattern{Regexp: re, Negate: negate, Line: line, LineNo: i + 1}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled exclude pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// AddFile reads an ignore file and compiles its lines.
func (m *Matcher) AddFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		m.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	m.AddLines(lines...)
	m.logger.Debug("Loaded ignore file", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

// Matches reports whether path is excluded.
func (m *Matcher) Matches(path string) bool {
	matched, _ := m.MatchesWithPattern(path)
	return matched
}

// MatchesWithPattern reports whether path is excluded and which pattern
// decided it. The deciding pattern is nil when nothing matched.
func (m *Matcher) MatchesWithPattern(path string) (bool, *Pattern) {
	normalized := filepath.ToSlash(path)

	matched := false
	var decided *Pattern
	for _, p := range m.patterns {
		if p.Regexp.MatchString(normalized) {
			matched = !p.Negate
			decided = p
		}
	}
	return matched, decided
}

// parseLine turns a single ignore line into a regular expression and a
// negation flag. It returns nil for blank lines, comments and patterns that
// fail to compile.
func parseLine(line string) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// "\#" and "\!" match a literal leading '#' or '!'.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return nil, false
	}

	expr := escapeSpecialChars(trimmed)
	expr = handleDoubleStar(expr)
	expr = wildcardToRegex(expr)
	expr = anchor(expr, trimmed)

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false
	}
	return re, negate
}

// escapeSpecialChars escapes regex metacharacters except '*', '?' and '/'.
func escapeSpecialChars(pattern string) string {
	const specialChars = `\.+()|^$[]{}`
	var b strings.Builder
	for _, r := range pattern {
		if strings.ContainsRune(specialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Placeholders for regex quantifiers produced by handleDoubleStar, restored
// after wildcardToRegex has rewritten the user's own '*' and '?'.
const (
	starMark  = "\x00s"
	quantMark = "\x00q"
)

// handleDoubleStar rewrites '**' segments.
func handleDoubleStar(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllString(pattern, `(/|/.`+starMark+`/)`)
	pattern = doubleStarTrailing.ReplaceAllString(pattern, `(/.`+starMark+`)`+quantMark)
	pattern = doubleStarLeading.ReplaceAllString(pattern, `(.`+starMark+`/)`+quantMark)
	return pattern
}

// wildcardToRegex converts '*' and '?' to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = singleStar.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", "[^/]")
	pattern = strings.ReplaceAll(pattern, starMark, "*")
	pattern = strings.ReplaceAll(pattern, quantMark, "?")
	return pattern
}

// anchor makes the expression match a whole path. A leading '/' pins the
// pattern to the root; otherwise it may match at any directory depth.
func anchor(pattern, original string) string {
	if strings.HasSuffix(original, "/") {
		pattern = strings.TrimSuffix(pattern, "/") + "(/.*)?$"
	} else {
		pattern += "(/.*)?$"
	}

	if strings.HasPrefix(original, "/") {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	return "^(|.*/)" + pattern
}
