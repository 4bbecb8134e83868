package theme

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"
)

//go:embed schema/theme.yaml
var defaultSchema []byte

// Default builds the theme tree from the embedded schema.
func Default() *Record {
	root, err := Parse(defaultSchema)
	if err != nil {
		panic(fmt.Sprintf("theme: embedded schema: %v", err))
	}
	return root
}

// Parse builds a theme tree from schema YAML. Mapping keys are kept in
// document order. A mapping with a "kind" key is a leaf; "label" is
// reserved on records.
func Parse(data []byte) (*Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing theme schema: %w", err)
	}
	root := NewRecord("theme", "Theme")
	if len(doc.Content) == 0 {
		return root, nil
	}
	if err := parseRecord(root, doc.Content[0], "theme"); err != nil {
		return nil, err
	}
	return root, nil
}

type leafSpec struct {
	Kind    string `yaml:"kind"`
	Default string `yaml:"default"`
	Label   string `yaml:"label"`
}

func parseRecord(r *Record, m *yaml.Node, where string) error {
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected mapping at line %d", where, m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		name := key.Value
		path := where + "." + name
		if name == "label" {
			r.label = val.Value
			continue
		}
		if val.Kind != yaml.MappingNode {
			return fmt.Errorf("%s: expected mapping at line %d", path, val.Line)
		}

		if hasKey(val, "kind") {
			var spec leafSpec
			if err := val.Decode(&spec); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			kind, err := parseKind(spec.Kind)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			leaf, err := NewLeaf(name, labelOr(spec.Label, name), kind, spec.Default)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			r.Add(leaf)
			continue
		}

		child := NewRecord(name, name)
		if err := parseRecord(child, val, path); err != nil {
			return err
		}
		r.Add(child)
	}
	return nil
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "color":
		return KindColor, nil
	case "size":
		return KindSize, nil
	default:
		return 0, fmt.Errorf("unknown leaf kind %q", s)
	}
}

func labelOr(label, name string) string {
	if label != "" {
		return label
	}
	return name
}
