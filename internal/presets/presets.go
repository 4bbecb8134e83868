// Package presets installs the add-on's bundled presets into the user's
// presets directory. Existing user directories are left alone unless a
// forced write is requested.
package presets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed bundled
var bundled embed.FS

// excludedNames are skipped during the copy.
var excludedNames = map[string]bool{
	".DS_Store":   true,
	"__pycache__": true,
}

// Report describes what Ensure did.
type Report struct {
	Dir     string
	Created bool
	Copied  []string
}

// Bundled returns the presets shipped with the add-on.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "bundled")
	if err != nil {
		panic(fmt.Sprintf("presets: bundled: %v", err))
	}
	return sub
}

// Ensure makes sure dir exists and holds the bundled presets. When dir is
// created here, or force is set, every file in src is written into it
// (overwriting on force). An existing directory is otherwise untouched, so
// user edits survive.
func Ensure(src fs.FS, dir string, force bool) (*Report, error) {
	report := &Report{Dir: dir}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return report, fmt.Errorf("creating presets directory %s: %w", dir, err)
		}
		report.Created = true
	case err != nil:
		return report, fmt.Errorf("checking presets directory %s: %w", dir, err)
	case !info.IsDir():
		return report, fmt.Errorf("presets path %s is not a directory", dir)
	}

	if !force && !report.Created {
		return report, nil
	}

	copied, err := copyTree(src, dir)
	report.Copied = copied
	if err != nil {
		return report, fmt.Errorf("copying presets to %s: %w", dir, err)
	}
	return report, nil
}

// copyTree copies every regular file of src into dst, creating directories
// as needed. It returns the slash-separated paths it wrote.
func copyTree(src fs.FS, dst string) ([]string, error) {
	var copied []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if shouldExclude(path.Base(p)) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
		copied = append(copied, p)
		return nil
	})
	return copied, err
}

func shouldExclude(name string) bool {
	return excludedNames[name]
}
