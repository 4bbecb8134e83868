package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgs-labs/sketcher/internal/branding"
)

// Directory and file name constants for the userdata convention.
const (
	ScriptsDir      = "scripts"
	PresetsDir      = "presets"
	ThemePresetsDir = "theme"
	ArtifactsDir    = "wheels"
	ConfigFile      = "config.yaml"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetHomeRoot returns ~/.bgs (or the BGS_HOME override).
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetConfigPath returns the settings file path.
// It checks BGS_CONFIG first, then falls back to ~/.bgs/config.yaml.
func GetConfigPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}

// GetScriptsRoot returns the user scripts directory, the host's equivalent
// of a per-user resource folder.
// It checks BGS_SCRIPTS first, then falls back to ~/.bgs/scripts.
func GetScriptsRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("SCRIPTS")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ScriptsDir), nil
}

// GetPresetsDir returns <scripts>/presets/<preset-subdir>.
func GetPresetsDir() (string, error) {
	root, err := GetScriptsRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, PresetsDir, branding.PresetSubdir()), nil
}

// GetThemePresetsDir returns the theme subdirectory of the presets directory.
func GetThemePresetsDir() (string, error) {
	dir, err := GetPresetsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ThemePresetsDir), nil
}

// GetArtifactsDir returns the directory scanned for bundled native artifacts.
// It checks BGS_ARTIFACTS first, then falls back to <executable-dir>/wheels.
func GetArtifactsDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("ARTIFACTS")); v != "" {
		return v, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), ArtifactsDir), nil
}
