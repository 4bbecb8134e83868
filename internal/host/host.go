// Package host defines the contract the add-on needs from its host
// application: a registry that capabilities are registered with and
// removed from. Memory is an in-process implementation used by the CLI
// harness and by tests.
package host

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind classifies a capability for the host.
type Kind string

const (
	KindPreferences  Kind = "preferences"
	KindPropertyType Kind = "property_type"
	KindOperator     Kind = "operator"
	KindPanel        Kind = "panel"
	KindMenu         Kind = "menu"
	KindGizmo        Kind = "gizmo"
	KindTool         Kind = "tool"
	KindKeymap       Kind = "keymap"
)

// Kinds lists every kind the host accepts.
func Kinds() []Kind {
	return []Kind{KindPreferences, KindPropertyType, KindOperator, KindPanel, KindMenu, KindGizmo, KindTool, KindKeymap}
}

// Descriptor identifies one host-registrable unit.
type Descriptor struct {
	ID   string
	Kind Kind
}

func (d Descriptor) String() string {
	return string(d.Kind) + ":" + d.ID
}

// Registry is the host's register/unregister primitive. Unregister of an
// unknown descriptor is a no-op.
type Registry interface {
	Register(d Descriptor) error
	Unregister(d Descriptor)
}

var (
	// ErrMalformed is returned for descriptors the host cannot accept.
	ErrMalformed = errors.New("malformed descriptor")
	// ErrDuplicate is returned when the ID is already registered.
	ErrDuplicate = errors.New("descriptor already registered")
)

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z0-9_]+)*$`)

// Validate checks that d is well formed.
func Validate(d Descriptor) error {
	if !idPattern.MatchString(d.ID) {
		return fmt.Errorf("%w: invalid id %q", ErrMalformed, d.ID)
	}
	for _, k := range Kinds() {
		if d.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown kind %q for %s", ErrMalformed, d.Kind, d.ID)
}
