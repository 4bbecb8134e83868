package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value type of a leaf.
type Kind int

const (
	KindColor Kind = iota
	KindSize
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindSize:
		return "size"
	default:
		return "unknown"
	}
}

// Node is either a *Record or a *Leaf.
type Node interface {
	Name() string
	Label() string
	node()
}

// Record is a nested group of properties.
type Record struct {
	name     string
	label    string
	Children []Node
}

// NewRecord creates an empty record.
func NewRecord(name, label string) *Record {
	return &Record{name: name, label: label}
}

func (r *Record) Name() string  { return r.name }
func (r *Record) Label() string { return r.label }
func (*Record) node()           {}

// Add appends a child and returns the record for chaining.
func (r *Record) Add(children ...Node) *Record {
	r.Children = append(r.Children, children...)
	return r
}

// Leaf is a single color or size value.
type Leaf struct {
	name  string
	label string
	kind  Kind
	def   string
	value string
}

// NewLeaf creates a leaf holding its default value. The default must be
// valid for kind.
func NewLeaf(name, label string, kind Kind, def string) (*Leaf, error) {
	l := &Leaf{name: name, label: label, kind: kind}
	norm, err := normalize(kind, def)
	if err != nil {
		return nil, fmt.Errorf("default for %s: %w", name, err)
	}
	l.def, l.value = norm, norm
	return l, nil
}

func (l *Leaf) Name() string  { return l.name }
func (l *Leaf) Label() string { return l.label }
func (*Leaf) node()           {}

// Kind returns the leaf value type.
func (l *Leaf) Kind() Kind { return l.kind }

// Value returns the current value in canonical text form: "#RRGGBBAA" for
// colors, a decimal number for sizes.
func (l *Leaf) Value() string { return l.value }

// Default returns the schema default.
func (l *Leaf) Default() string { return l.def }

// Set validates and stores a new value.
func (l *Leaf) Set(value string) error {
	norm, err := normalize(l.kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", l.name, err)
	}
	l.value = norm
	return nil
}

// Reset restores the default.
func (l *Leaf) Reset() { l.value = l.def }

// ErrInvalidValue is returned for values that do not fit a leaf's kind.
var ErrInvalidValue = errors.New("invalid theme value")

func normalize(kind Kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case KindColor:
		hex := strings.TrimPrefix(value, "#")
		if len(hex) == 6 {
			hex += "FF"
		}
		if len(hex) != 8 {
			return "", fmt.Errorf("%w: color %q must be #RRGGBB or #RRGGBBAA", ErrInvalidValue, value)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", fmt.Errorf("%w: color %q", ErrInvalidValue, value)
		}
		return "#" + strings.ToUpper(hex), nil
	case KindSize:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return "", fmt.Errorf("%w: size %q must be a non-negative number", ErrInvalidValue, value)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %d", ErrInvalidValue, kind)
	}
}
