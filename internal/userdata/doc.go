// Package userdata resolves the per-user locations the add-on reads and
// writes: the settings file, the scripts tree holding presets, and the
// directory bundled native artifacts ship in. Every location can be
// overridden with a BGS_* environment variable.
package userdata
