package theme

import (
	"errors"
	"fmt"
	"strings"
)

// SkipRecord can be returned from a WalkFunc to skip part of the tree.
// Returned for a record, its children are skipped. Returned for a leaf, the
// remaining properties of the leaf's parent record are skipped.
var SkipRecord = errors.New("skip this record")

// WalkFunc is called for every node below the root in declaration order.
// path holds the property names from the root to n, n included.
type WalkFunc func(path []string, n Node) error

// Walk visits every node under root depth-first in declaration order,
// entering a record before its children. The schema is acyclic, so the walk
// always terminates.
func Walk(root *Record, fn WalkFunc) error {
	return walkRecord(root, nil, fn)
}

func walkRecord(r *Record, prefix []string, fn WalkFunc) error {
	for _, child := range r.Children {
		path := append(prefix[:len(prefix):len(prefix)], child.Name())
		err := fn(path, child)
		rec, isRecord := child.(*Record)
		if err != nil {
			if !errors.Is(err, SkipRecord) {
				return err
			}
			if isRecord {
				continue
			}
			return nil
		}
		if isRecord {
			if err := walkRecord(rec, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Leaves returns every leaf keyed by dotted path, in walk order.
func Leaves(root *Record) ([]string, map[string]*Leaf) {
	var order []string
	leaves := make(map[string]*Leaf)
	_ = Walk(root, func(path []string, n Node) error {
		if l, ok := n.(*Leaf); ok {
			key := strings.Join(path, ".")
			order = append(order, key)
			leaves[key] = l
		}
		return nil
	})
	return order, leaves
}

// Lookup finds the leaf at a dotted path such as "constraint.reference.default".
func Lookup(root *Record, dotted string) (*Leaf, error) {
	current := root
	parts := strings.Split(dotted, ".")
	for i, part := range parts {
		child := findChild(current, part)
		if child == nil {
			return nil, fmt.Errorf("theme property %q not found", dotted)
		}
		if i == len(parts)-1 {
			leaf, ok := child.(*Leaf)
			if !ok {
				return nil, fmt.Errorf("theme property %q is a record, not a value", dotted)
			}
			return leaf, nil
		}
		rec, ok := child.(*Record)
		if !ok {
			return nil, fmt.Errorf("theme property %q is not a record", strings.Join(parts[:i+1], "."))
		}
		current = rec
	}
	return nil, fmt.Errorf("theme property %q not found", dotted)
}

func findChild(r *Record, name string) Node {
	for _, c := range r.Children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
