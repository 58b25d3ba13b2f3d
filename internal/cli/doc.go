// Package cli defines the Cobra command tree for the gameshelf CLI. Each file
// in this package registers one top-level command (add, list, launch, etc.)
// with the root command. Commands stand in for the drag-and-drop window: they
// delegate to the registry service and only handle flags and output.
package cli
