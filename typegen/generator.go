// Package typegen renders a parsed model into generated source artifacts.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Backend-agnostic resolution (resolve.go) turns type references into native
//     types, include sets and alias lists using a per-backend TypeMapping
//  2. Backend generators (cpp/, markdown/) walk the exported interfaces and render
//     embedded templates into an output directory
//
// # Design Decisions
//
//   - Generators only read the model; they never see the decoded documents
//   - Every version is checked before the first file is written, so a mismatch
//     leaves the output directory untouched
//   - Deterministic output (sorted symbols, includes and aliases) makes two runs
//     over the same input byte-identical, which is what `a2ml check` relies on
//
// # Implementing a New Generator
//
//  1. Create package: typegen/<name>/generator.go
//  2. Implement the Generator interface (see below)
//  3. Register it in driver.Generators()
//  4. Add tests that generate into t.TempDir() and inspect the files
package typegen

import (
	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/plugin"
)

// Generator renders the exported interfaces of a model into files.
type Generator interface {
	plugin.Plugin

	// Generate writes every artifact for m under outDir and returns the written
	// paths, relative to outDir, sorted. outDir is a staging directory; the
	// generator never writes anywhere else.
	Generate(m *model.Model, outDir string) ([]string, error)
}
