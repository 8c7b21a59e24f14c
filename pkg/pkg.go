package pkg

import (
	_ "embed"
)

// Version is the semantic version of the edl module embedded at build
// time. It is printed by the CLI version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project.
	Name = "edl"
	// Description is a short, human-readable summary of the project used
	// in help output.
	Description = "Element definition language compiler"
)
