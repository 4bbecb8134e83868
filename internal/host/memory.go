package host

import (
	"fmt"
	"sync"
)

// Op is a registry operation recorded by Memory.
type Op string

const (
	OpRegister   Op = "register"
	OpUnregister Op = "unregister"
)

// Event is one recorded registry call.
type Event struct {
	Op Op
	ID string
}

// Memory is a Registry that keeps descriptors in registration order and
// records every call.
type Memory struct {
	mu       sync.Mutex
	version  string
	entries  []Descriptor
	events   []Event
	failures map[string]error
}

// NewMemory creates an empty registry reporting the given host version.
func NewMemory(version string) *Memory {
	return &Memory{version: version, failures: make(map[string]error)}
}

// Version returns the host version string.
func (m *Memory) Version() string {
	return m.version
}

// Register adds d. It fails for malformed or duplicate descriptors, and for
// IDs armed with FailOn.
func (m *Memory) Register(d Descriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := Validate(d); err != nil {
		return err
	}
	if err, ok := m.failures[d.ID]; ok {
		return fmt.Errorf("registering %s: %w", d, err)
	}
	if m.indexLocked(d.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, d)
	}
	m.entries = append(m.entries, d)
	m.events = append(m.events, Event{Op: OpRegister, ID: d.ID})
	return nil
}

// Unregister removes d if present.
func (m *Memory) Unregister(d Descriptor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(d.ID)
	if i < 0 {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.events = append(m.events, Event{Op: OpUnregister, ID: d.ID})
}

// FailOn makes the next Register calls for id fail with err until cleared
// with a nil err.
func (m *Memory) FailOn(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, id)
		return
	}
	m.failures[id] = err
}

// Has reports whether id is registered.
func (m *Memory) Has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexLocked(id) >= 0
}

// Registered returns the registered descriptors in registration order.
func (m *Memory) Registered() []Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Descriptor, len(m.entries))
	copy(out, m.entries)
	return out
}

// Events returns every recorded call in order.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Memory) indexLocked(id string) int {
	for i, e := range m.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
