package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ErrFileNotFound is returned by FindFile when no file matches.
var ErrFileNotFound = errors.New("file not found")

// FindFile searches the tree rooted at dir for a regular file whose base
// name equals name, returning the first match.
//
// filepath.WalkDir visits directory entries in lexicographic order, so
// the result is deterministic even when several files share the name.
func FindFile(dir, name string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching %q for %s: %w", dir, name, err)
	}
	if found == "" {
		return "", fmt.Errorf("%s not found under %q: %w", name, dir, ErrFileNotFound)
	}
	return found, nil
}
