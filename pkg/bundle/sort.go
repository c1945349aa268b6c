package bundle

import (
	"path/filepath"
	"sort"
)

// SortFiles orders files in place by key using ordinal, case-sensitive
// comparison. The sort is stable, so files with equal keys keep their
// listing order.
func SortFiles(files []FileEntry, key SortKey) {
	sortKey := func(f FileEntry) string { return f.Name }
	if key == SortByExtension {
		sortKey = func(f FileEntry) string { return filepath.Ext(f.Name) }
	}

	sort.SliceStable(files, func(i, j int) bool {
		return sortKey(files[i]) < sortKey(files[j])
	})
}
