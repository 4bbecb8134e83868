// Package capability describes the add-on's host-registrable units as data.
// A Set is an ordered list of descriptors, each tagged Base (always
// registrable) or Dependent (requires the native solver module). The
// default set is loaded from an embedded manifest, checked against a JSON
// schema, and verified so that every prerequisite precedes its dependents.
package capability
