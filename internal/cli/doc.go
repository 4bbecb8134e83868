// Package cli defines the Cobra command tree for the sketcher CLI, a
// development harness that runs the add-on lifecycle against an in-memory
// host. Each file registers one top-level command with the root command.
// Commands delegate to internal packages and only handle flags and output.
package cli
