package theme

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bgs-labs/sketcher/internal/schemaval"
	"go.yaml.in/yaml/v3"
)

//go:embed schema/preset.schema.json
var presetSchemaBytes []byte

// PresetExt is the file extension of theme presets.
const PresetExt = ".yaml"

var presetSchema = schemaval.New("preset.schema.json", presetSchemaBytes)

// Preset assigns values to theme leaves by dotted path.
type Preset struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Values      map[string]any `yaml:"values"`
}

// PresetError lists the schema violations of a preset document.
type PresetError struct {
	Source string
	Issues []string
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("invalid theme preset %s: %s", e.Source, strings.Join(e.Issues, "; "))
}

// ParsePreset validates preset YAML against the preset schema and decodes it.
// source names the document in error messages.
func ParsePreset(data []byte, source string) (*Preset, error) {
	issues, err := presetSchema.ValidateYAML(data)
	if err != nil {
		return nil, fmt.Errorf("validating preset %s: %w", source, err)
	}
	if len(issues) > 0 {
		pe := &PresetError{Source: source}
		for _, issue := range issues {
			pe.Issues = append(pe.Issues, issue.String())
		}
		return nil, pe
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding preset %s: %w", source, err)
	}
	return &p, nil
}

// LoadPreset reads and validates a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset: %w", err)
	}
	return ParsePreset(data, filepath.Base(path))
}

// ListPresets returns the preset files in dir sorted by name. A missing
// directory yields no presets.
func ListPresets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading preset directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), PresetExt) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Apply writes the preset's values into the tree. Every path is checked
// before anything is written, so a bad preset leaves the tree untouched.
func (p *Preset) Apply(root *Record) error {
	keys := make([]string, 0, len(p.Values))
	for k := range p.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	type write struct {
		leaf  *Leaf
		value string
	}
	writes := make([]write, 0, len(keys))
	for _, key := range keys {
		leaf, err := Lookup(root, key)
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		value := formatValue(p.Values[key])
		if _, err := normalize(leaf.Kind(), value); err != nil {
			return fmt.Errorf("preset %s: %s: %w", p.Name, key, err)
		}
		writes = append(writes, write{leaf, value})
	}
	for _, w := range writes {
		_ = w.leaf.Set(w.value)
	}
	return nil
}

// Capture records every leaf value of root as a preset.
func Capture(root *Record, name string) *Preset {
	order, leaves := Leaves(root)
	p := &Preset{Name: name, Values: make(map[string]any, len(order))}
	for _, key := range order {
		l := leaves[key]
		if l.Kind() == KindSize {
			f, _ := strconv.ParseFloat(l.Value(), 64)
			p.Values[key] = f
			continue
		}
		p.Values[key] = l.Value()
	}
	return p
}

// Save writes the preset as YAML.
func (p *Preset) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing preset: %w", err)
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
