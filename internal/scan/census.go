package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// NoExtension is the census bucket for files without an extension.
const NoExtension = "<no_extension>"

// CountExtensions walks root recursively and tallies every file by its
// lower-cased extension, supported or not. Files without an extension
// bucket under NoExtension.
func CountExtensions(root string) (map[string]int, error) {
	counts := make(map[string]int)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := Ext(path)
		if ext == "" {
			ext = NoExtension
		}
		counts[ext]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// SortedCounts flattens a census into (extension, count) pairs ordered by
// count descending, ties alphabetically.
func SortedCounts(counts map[string]int) []ExtCount {
	out := make([]ExtCount, 0, len(counts))
	for ext, n := range counts {
		out = append(out, ExtCount{Ext: ext, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Ext < out[j].Ext
	})
	return out
}

// ExtCount is one census row.
type ExtCount struct {
	Ext   string `json:"extension"`
	Count int    `json:"count"`
}
