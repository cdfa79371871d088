package collector

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Dir is the filesystem-backed collector used outside tests.
type Dir struct{}

// FindFlacs implements the collector contract over the real filesystem.
func (Dir) FindFlacs(dir string) ([]string, error) {
	return FindFlacs(dir)
}

// FindFlacs walks dir recursively and returns the absolute paths of every
// FLAC file beneath it, lexically sorted. The result is empty (not nil-safe
// distinct) when the directory holds no FLAC files. Errors reading the tree
// mid-scan are hard failures, not findings.
func FindFlacs(dir string) ([]string, error) {
	var flacs []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("scan %s: %w", path, walkErr)
		}
		if entry.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".flac") {
			flacs = append(flacs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(flacs)
	return flacs, nil
}
