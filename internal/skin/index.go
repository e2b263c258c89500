package skin

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps lowercase skin stems to file paths. When several files share a
// stem, the format with an alpha channel wins (PNG over JPEG, and so on).
type Index struct {
	entries map[string]string // stem → full path
}

// BuildIndex walks dir and its subdirectories for supported image files.
func BuildIndex(dir string) (*Index, error) {
	idx := &Index{entries: make(map[string]string)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !Supported(path) {
			return nil
		}
		idx.add(path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) add(path string) {
	key := stem(path)
	existing, ok := idx.entries[key]
	if !ok || rank(path) < rank(existing) {
		idx.entries[key] = path
	}
}

func rank(path string) int {
	return priority[strings.ToLower(filepath.Ext(path))]
}

// ResolvePath returns the file for a skin name, ignoring any directory
// prefix and extension ("Costumes\\Cat.jpg" finds cat.png).
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[stem(name)]
	return path, ok
}

// Len returns the number of indexed skins.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Names returns the indexed stems, sorted.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.entries))
	for k := range idx.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
