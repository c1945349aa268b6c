package bundle

import (
	"strings"
)

// RemoveEmptyLines drops lines that are empty or contain only whitespace.
// Lines are split on '\n' and the remaining ones are joined with '\n' in
// their original order; a trailing '\r' on a kept line is preserved.
func RemoveEmptyLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Header lines of the bundle format.
func authorLine(author string) string {
	return "// Author: " + author + "\n"
}

func sourceLine(rel string) string {
	return "// Source: " + rel + "\n"
}

func fileLine(name string) string {
	return "// File: " + name + "\n"
}
