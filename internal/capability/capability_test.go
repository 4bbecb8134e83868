package capability

import (
	"errors"
	"strings"
	"testing"

	"github.com/bgs-labs/sketcher/internal/host"
)

func TestDefaultSet(t *testing.T) {
	s := Default()

	base := s.Base()
	if len(base) != 3 {
		t.Fatalf("len(Base()) = %d, want 3", len(base))
	}
	if base[len(base)-1].ID != "preferences" {
		t.Errorf("last base capability = %s, want preferences", base[len(base)-1].ID)
	}
	if len(s.Dependent()) == 0 {
		t.Fatal("expected dependent capabilities")
	}
	if len(s.Base())+len(s.Dependent()) != len(s.All()) {
		t.Error("Base and Dependent do not partition All")
	}

	for _, c := range s.Dependent() {
		if c.Tier != TierDependent {
			t.Errorf("%s in Dependent() has tier %s", c.ID, c.Tier)
		}
	}
}

func TestDefaultSetPrerequisitesPrecede(t *testing.T) {
	pos := make(map[string]int)
	for i, c := range Default().All() {
		pos[c.ID] = i
	}
	for _, c := range Default().All() {
		for _, req := range c.Requires {
			if pos[req] >= pos[c.ID] {
				t.Errorf("%s requires %s but registers first", c.ID, req)
			}
		}
	}
}

func TestNewSetRejectsForwardRequirement(t *testing.T) {
	_, err := NewSet([]Capability{
		{ID: "a", Kind: host.KindPanel, Tier: TierBase, Requires: []string{"b"}},
		{ID: "b", Kind: host.KindPanel, Tier: TierBase},
	})
	if err == nil || !strings.Contains(err.Error(), "not declared before") {
		t.Errorf("NewSet = %v, want ordering error", err)
	}
}

func TestNewSetRejectsBaseOnDependent(t *testing.T) {
	_, err := NewSet([]Capability{
		{ID: "dep", Kind: host.KindPanel, Tier: TierDependent},
		{ID: "base", Kind: host.KindPanel, Tier: TierBase, Requires: []string{"dep"}},
	})
	if err == nil {
		t.Error("expected error for base requiring dependent")
	}
}

func TestNewSetRejectsDuplicatesAndMalformed(t *testing.T) {
	if _, err := NewSet([]Capability{
		{ID: "a", Kind: host.KindPanel, Tier: TierBase},
		{ID: "a", Kind: host.KindMenu, Tier: TierBase},
	}); err == nil {
		t.Error("expected error for duplicate id")
	}

	_, err := NewSet([]Capability{{ID: "A!", Kind: host.KindPanel, Tier: TierBase}})
	if !errors.Is(err, host.ErrMalformed) {
		t.Errorf("NewSet = %v, want host.ErrMalformed", err)
	}

	if _, err := NewSet([]Capability{{ID: "a", Kind: host.KindPanel, Tier: "optional"}}); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing tier", "capabilities:\n  - {id: a, kind: panel}\n"},
		{"bad kind", "capabilities:\n  - {id: a, kind: widget, tier: base}\n"},
		{"empty list", "capabilities: []\n"},
		{"unknown field", "capabilities:\n  - {id: a, kind: panel, tier: base, color: red}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var me *ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("Parse = %v, want *ManifestError", err)
			}
			if len(me.Issues) == 0 {
				t.Error("expected issues")
			}
		})
	}
}

func TestParseDependentRequires(t *testing.T) {
	data := "capabilities:\n  - {id: a, kind: panel, tier: base}\n  - {id: b, kind: operator, tier: dependent, requires: [a]}\n"
	s, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	deps := s.Dependent()
	if len(deps) != 1 || deps[0].ID != "b" || deps[0].Tier != TierDependent {
		t.Errorf("Dependent() = %+v", deps)
	}
}

func TestManifestErrorNamesPath(t *testing.T) {
	_, err := Parse([]byte("capabilities:\n  - {id: a, kind: widget, tier: base}\n"))
	var me *ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("Parse = %v, want *ManifestError", err)
	}
	if !strings.Contains(me.Error(), "/capabilities/0/kind") {
		t.Errorf("Error() = %q, want the offending location", me.Error())
	}
}
