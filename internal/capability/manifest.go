package capability

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/bgs-labs/sketcher/internal/schemaval"
	"go.yaml.in/yaml/v3"
)

//go:embed capabilities.yaml
var defaultManifest []byte

//go:embed schema/capabilities.schema.json
var schemaBytes []byte

var manifestSchema = schemaval.New("capabilities.schema.json", schemaBytes)

// ValidationIssue is a single schema violation.
type ValidationIssue = schemaval.Issue

// ManifestError reports schema violations in a capability manifest.
type ManifestError struct {
	Issues []ValidationIssue
}

func (e *ManifestError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "invalid capability manifest: " + strings.Join(parts, "; ")
}

type manifest struct {
	Capabilities []Capability `yaml:"capabilities"`
}

// Default returns the add-on's capability set.
func Default() *Set {
	s, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("capability: embedded manifest: %v", err))
	}
	return s
}

// Parse validates manifest YAML against the schema, decodes it and checks
// ordering with NewSet.
func Parse(data []byte) (*Set, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding capability manifest: %w", err)
	}
	return NewSet(m.Capabilities)
}

func validate(data []byte) error {
	issues, err := manifestSchema.ValidateYAML(data)
	if err != nil {
		return fmt.Errorf("validating capability manifest: %w", err)
	}
	if len(issues) > 0 {
		return &ManifestError{Issues: issues}
	}
	return nil
}
