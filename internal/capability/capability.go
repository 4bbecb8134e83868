package capability

import (
	"fmt"

	"github.com/bgs-labs/sketcher/internal/host"
)

// Tier says whether a capability needs the native module.
type Tier string

const (
	TierBase      Tier = "base"
	TierDependent Tier = "dependent"
)

// Capability is one entry of a Set.
type Capability struct {
	ID       string    `yaml:"id"`
	Kind     host.Kind `yaml:"kind"`
	Tier     Tier      `yaml:"tier"`
	Requires []string  `yaml:"requires,omitempty"`
}

// Descriptor returns the host view of the capability.
func (c Capability) Descriptor() host.Descriptor {
	return host.Descriptor{ID: c.ID, Kind: c.Kind}
}

// Set is an ordered, validated capability list.
type Set struct {
	items []Capability
}

// NewSet validates ordering and returns the set. Rules: IDs are unique,
// every requirement names an earlier entry, and a base entry never requires
// a dependent one.
func NewSet(items []Capability) (*Set, error) {
	seen := make(map[string]Tier, len(items))
	for i, c := range items {
		if err := host.Validate(c.Descriptor()); err != nil {
			return nil, fmt.Errorf("capability %d: %w", i, err)
		}
		if c.Tier != TierBase && c.Tier != TierDependent {
			return nil, fmt.Errorf("capability %s: unknown tier %q", c.ID, c.Tier)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("capability %s declared twice", c.ID)
		}
		for _, req := range c.Requires {
			tier, ok := seen[req]
			if !ok {
				return nil, fmt.Errorf("capability %s requires %s, which is not declared before it", c.ID, req)
			}
			if c.Tier == TierBase && tier == TierDependent {
				return nil, fmt.Errorf("base capability %s cannot require dependent capability %s", c.ID, req)
			}
		}
		seen[c.ID] = c.Tier
	}
	out := make([]Capability, len(items))
	copy(out, items)
	return &Set{items: out}, nil
}

// All returns every capability in registration order.
func (s *Set) All() []Capability {
	out := make([]Capability, len(s.items))
	copy(out, s.items)
	return out
}

// Base returns the base capabilities in registration order.
func (s *Set) Base() []Capability {
	return s.filter(TierBase)
}

// Dependent returns the dependent capabilities in registration order.
func (s *Set) Dependent() []Capability {
	return s.filter(TierDependent)
}

func (s *Set) filter(tier Tier) []Capability {
	var out []Capability
	for _, c := range s.items {
		if c.Tier == tier {
			out = append(out, c)
		}
	}
	return out
}
