package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entriesNamed(names ...string) []FileEntry {
	files := make([]FileEntry, len(names))
	for i, n := range names {
		files[i] = FileEntry{Name: n, Path: "/src/" + n}
	}
	return files
}

func names(files []FileEntry) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestSortFiles(t *testing.T) {
	tests := []struct {
		name  string
		key   SortKey
		input []string
		want  []string
	}{
		{
			name:  "by name",
			key:   SortByName,
			input: []string{"c.py", "a.go", "b.cs"},
			want:  []string{"a.go", "b.cs", "c.py"},
		},
		{
			name:  "by name is case sensitive",
			key:   SortByName,
			input: []string{"b.go", "B.go", "a.go"},
			want:  []string{"B.go", "a.go", "b.go"},
		},
		{
			name:  "by extension",
			key:   SortByExtension,
			input: []string{"a.py", "b.cs", "c.go"},
			want:  []string{"b.cs", "c.go", "a.py"},
		},
		{
			name:  "by extension keeps listing order on ties",
			key:   SortByExtension,
			input: []string{"z.go", "a.py", "m.go", "b.go"},
			want:  []string{"z.go", "m.go", "b.go", "a.py"},
		},
		{
			name:  "no extension sorts first",
			key:   SortByExtension,
			input: []string{"a.go", "Makefile"},
			want:  []string{"Makefile", "a.go"},
		},
		{
			name:  "empty key means name",
			key:   "",
			input: []string{"b", "a"},
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := entriesNamed(tt.input...)
			SortFiles(files, tt.key)
			assert.Equal(t, tt.want, names(files))
		})
	}
}
