// Package theme models the add-on's theme settings as a tree of named
// records and leaves. The tree shape comes from an embedded schema and keeps
// declaration order; callers traverse it generically with Walk and never
// depend on individual property names. Theme presets are YAML documents that
// assign values to leaves by dotted path.
package theme
