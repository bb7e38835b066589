// Package plugin provides the name-driven backend registry used to select parsers
// and generators.
//
// A backend is chosen by string at the command line. Backends are registered
// explicitly at startup; nothing is loaded dynamically. Each backend describes
// itself through Metadata, including an optional semver constraint on the message
// versions it can handle.
//
// Backend kinds:
//   - parser: reads definition documents into a model (e.g., a2ml, toml)
//   - generator: renders exported interfaces into files (e.g., cpp, markdown)
package plugin

// Plugin is the capability shared by every backend.
type Plugin interface {
	// Metadata returns information about this backend
	Metadata() Metadata
}

// Metadata describes a backend
type Metadata struct {
	// Name is the identifier used on the command line (e.g., "cpp", "markdown")
	Name string

	// Version is the backend version (semver)
	Version string

	// MessageVersion is the supported message version (semver constraint, e.g. ">=3.0, <5.0").
	// Empty means any version.
	MessageVersion string

	// Description is a human-readable description
	Description string
}
