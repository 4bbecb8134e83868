// Package schemaval validates YAML documents against embedded JSON
// schemas. Each Schema compiles once on first use; violations come back as
// flat, localized issues.
package schemaval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Issue is a single schema violation.
type Issue struct {
	Path    string // Instance location (e.g., "/capabilities/3/kind"), "" for the document root
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Schema is a lazily compiled JSON schema.
type Schema struct {
	name string
	data []byte

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// New returns a Schema for the JSON document data. name identifies it in
// errors and must be unique per compiler; one compiler is used per Schema.
func New(name string, data []byte) *Schema {
	return &Schema{name: name, data: data}
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(s.data))
		if err != nil {
			s.err = fmt.Errorf("unmarshaling schema %s: %w", s.name, err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(s.name, doc); err != nil {
			s.err = fmt.Errorf("adding schema resource %s: %w", s.name, err)
			return
		}
		s.compiled, err = c.Compile(s.name)
		if err != nil {
			s.err = fmt.Errorf("compiling schema %s: %w", s.name, err)
		}
	})
	return s.compiled, s.err
}

// ValidateYAML checks a YAML document. A valid document yields no issues
// and a nil error; the error is reserved for documents that cannot be
// parsed and for schema failures.
func (s *Schema) ValidateYAML(data []byte) ([]Issue, error) {
	schema, err := s.compile()
	if err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	var issues []Issue
	collect(ve, &issues)
	if len(issues) == 0 {
		issues = []Issue{{Message: ve.Error()}}
	}
	return issues, nil
}

// collect walks the error tree and keeps leaf errors.
func collect(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*issues = append(*issues, Issue{Path: path, Message: msg})
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, issues)
	}
}
