// Package branding provides compile-time identity values for the add-on.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults apply when the embedded file is
// empty or missing a key.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	AddonID        string `yaml:"addon_id"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	Version        string `yaml:"version"`
	MinHostVersion string `yaml:"min_host_version"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	PresetSubdir   string `yaml:"preset_subdir"`
	NativePackage  string `yaml:"native_package"`
	NativeModule   string `yaml:"native_module"`
	IndexURL       string `yaml:"index_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:        "sketcher",
			AddonID:        "geometry_sketcher",
			DisplayName:    "Geometry Sketcher",
			Description:    "Dynamic constraint-based geometry sketcher",
			Version:        "0.10.0",
			MinHostVersion: "2.80.0",
			HomeDir:        ".bgs",
			EnvPrefix:      "BGS",
			PresetSubdir:   "bgs",
			NativePackage:  "py-slvs",
			NativeModule:   "py_slvs",
			IndexURL:       "https://pypi.org",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the harness command name (e.g., "sketcher").
func CLIName() string { load(); return defaults.CLIName }

// AddonID returns the identifier the host knows the add-on by. It also names
// the log file.
func AddonID() string { load(); return defaults.AddonID }

// DisplayName returns the human-readable add-on name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short add-on description.
func Description() string { load(); return defaults.Description }

// Version returns the add-on version (e.g., "0.10.0").
func Version() string { load(); return defaults.Version }

// MinHostVersion returns the oldest host version the add-on supports.
func MinHostVersion() string { load(); return defaults.MinHostVersion }

// HomeDir returns the dot-directory name under $HOME (e.g., ".bgs").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "BGS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PresetSubdir returns the directory name used under <scripts>/presets/.
func PresetSubdir() string { load(); return defaults.PresetSubdir }

// NativePackage returns the package index name of the solver module.
func NativePackage() string { load(); return defaults.NativePackage }

// NativeModule returns the import name of the solver module.
func NativeModule() string { load(); return defaults.NativeModule }

// IndexURL returns the base URL of the package index.
func IndexURL() string { load(); return defaults.IndexURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("scripts") → "BGS_SCRIPTS".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
