package userdata

import (
	"fmt"
	"io"
	"os"
)

// Check reports the state of the add-on's directories and settings file.
// When fix is true, missing directories are created. It returns the number
// of problems left unfixed.
func Check(w io.Writer, fix bool) (int, error) {
	home, err := GetHomeRoot()
	if err != nil {
		return 0, err
	}
	config, err := GetConfigPath()
	if err != nil {
		return 0, err
	}
	scripts, err := GetScriptsRoot()
	if err != nil {
		return 0, err
	}
	presetsDir, err := GetPresetsDir()
	if err != nil {
		return 0, err
	}
	artifacts, err := GetArtifactsDir()
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(w, "Userdata check:")
	problems := 0
	problems += checkDir(w, home, fix)
	problems += checkFile(w, config)
	problems += checkDir(w, scripts, fix)
	problems += checkDir(w, presetsDir, false)
	// The artifacts directory ships with the add-on; creating it fixes nothing.
	problems += checkDir(w, artifacts, false)
	return problems, nil
}

func checkDir(w io.Writer, path string, fix bool) int {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return 1
		}
		if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return 1
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return 0
}

// checkFile reports a missing settings file without counting it as a
// problem; the first settings write creates it.
func checkFile(w io.Writer, path string) int {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(w, "  [INFO] %s not written yet, defaults apply\n", path)
		return 0
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	case info.IsDir():
		fmt.Fprintf(w, "  [WARN] %s is a directory\n", path)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return 0
}
