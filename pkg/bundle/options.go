package bundle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// WildcardLanguage selects every file regardless of extension.
const WildcardLanguage = "all"

// SortKey selects the ordering of files in the bundle.
type SortKey string

const (
	SortByName      SortKey = "name"      // Ordinal order of file names (default).
	SortByExtension SortKey = "extension" // Ordinal order of extensions, stable on ties.
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortByName, SortByExtension}

// ParseSortKey accepts "name" or "extension", case-insensitively. An empty
// value selects SortByName.
func ParseSortKey(s string) (SortKey, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return SortByName, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(v, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q: must be %q or %q", s, SortByName, SortByExtension)
}

// Options holds the configuration for one bundle run.
type Options struct {
	Languages        []string // Extensions or "all"; each value may itself be comma separated.
	Output           string   // Destination path for the bundle.
	Note             bool     // Prefix each file with its path relative to WorkDir.
	Sort             SortKey  // File ordering; empty means SortByName.
	RemoveEmptyLines bool     // Drop whitespace-only lines from file contents.
	Author           string   // Optional author header.
	WorkDir          string   // Directory to bundle; empty means the current directory.
	Exclude          []string // Additional gitignore-style exclude patterns.
	IgnoreFile       string   // Optional file of exclude patterns.
	SkipBinary       bool     // Leave out files that look binary.
}

// LanguageFilter selects files by extension.
type LanguageFilter struct {
	all  bool
	exts map[string]struct{}
}

// ParseLanguages builds a filter from the --language values. Each value may
// hold several comma-separated extensions. Items are trimmed, lowercased and
// stripped of a leading dot; empty items are dropped. Any "all" turns the
// filter into a wildcard.
func ParseLanguages(values []string) (LanguageFilter, error) {
	f := LanguageFilter{exts: map[string]struct{}{}}
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			ext := normalizeExtension(item)
			if ext == "" {
				continue
			}
			if ext == WildcardLanguage {
				return LanguageFilter{all: true}, nil
			}
			f.exts[ext] = struct{}{}
		}
	}
	if len(f.exts) == 0 {
		return LanguageFilter{}, ErrNoLanguages
	}
	return f, nil
}

// All reports whether the filter is the wildcard.
func (f LanguageFilter) All() bool { return f.all }

// Extensions returns the requested extensions in sorted order, or nil for
// the wildcard.
func (f LanguageFilter) Extensions() []string {
	if f.all {
		return nil
	}
	out := make([]string, 0, len(f.exts))
	for ext := range f.exts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Match reports whether a file name passes the filter. The comparison is
// case-insensitive and ignores the dot.
func (f LanguageFilter) Match(name string) bool {
	if f.all {
		return true
	}
	_, ok := f.exts[normalizeExtension(filepath.Ext(name))]
	return ok
}

func normalizeExtension(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
