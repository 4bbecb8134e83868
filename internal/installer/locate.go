package installer

import (
	"io/fs"
	"path/filepath"
)

// LocateBundledArtifact walks root and returns the first wheel built for t,
// in lexical walk order. A missing or unreadable root yields no match.
func LocateBundledArtifact(root string, t Target) (string, bool) {
	pattern := t.Pattern()
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return nil
		}
		w, err := ParseWheelName(d.Name())
		if err != nil || !w.Compatible(t) {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	return found, found != ""
}
