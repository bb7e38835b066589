// Package markdown generates one Markdown document per exported interface, plus
// a README.md index linking them.
package markdown

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/plugin"
	"github.com/teranos/a2ml/typegen"
)

// Name is the backend name used on the command line.
const Name = "markdown"

// IndexFile lists every generated document.
const IndexFile = "README.md"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generator implements typegen.Generator for Markdown
type Generator struct {
	templates *typegen.Templates
}

// NewGenerator creates a new Markdown generator
func NewGenerator() *Generator {
	return &Generator{
		templates: typegen.MustParseTemplates(templateFS, "templates/*.tmpl", template.FuncMap{
			"cell": Cell,
		}),
	}
}

// Metadata describes the Markdown backend
func (g *Generator) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Name:        Name,
		Version:     "1.0.0",
		Description: "Markdown interface documentation",
	}
}

// Generate writes {Topic}.md for every exported interface and README.md.
func (g *Generator) Generate(m *model.Model, outDir string) ([]string, error) {
	if err := typegen.CheckVersions(m); err != nil {
		return nil, err
	}

	resolver := typegen.NewResolver(m, Mapping())
	out := typegen.NewOutput(outDir)

	var entries []indexEntry
	for _, iface := range m.ExportedInterfaces() {
		doc, err := buildDocument(resolver, iface)
		if err != nil {
			return nil, err
		}
		content, err := g.templates.Render("interface.md.tmpl", doc)
		if err != nil {
			return nil, errors.Wrapf(err, "render document for %s", iface.Topic)
		}
		if err := out.Write(FileName(iface), content); err != nil {
			return nil, err
		}
		entries = append(entries, indexEntry{
			Topic:       iface.Topic,
			File:        FileName(iface),
			Description: firstLine(iface.Description),
			Messages:    len(doc.Messages),
			Types:       len(doc.Types),
		})
	}

	if err := out.Write(IndexFile, []byte(generateIndex(m.Version, entries))); err != nil {
		return nil, err
	}
	return out.Files(), nil
}

// FileName returns the document name of an interface: {Topic}.md.
func FileName(iface *model.Interface) string {
	return iface.Topic + ".md"
}

// Anchor returns the in-page link target of a heading.
func Anchor(heading string) string {
	return strings.ToLower(heading)
}

// Mapping returns the Markdown type mapping: primitives as code, references as links.
func Mapping() *typegen.TypeMapping {
	primitives := make(map[string]typegen.Native, len(model.Primitives))
	for _, p := range model.Primitives {
		primitives[p] = typegen.Native{Type: "`" + p + "`"}
	}
	return &typegen.TypeMapping{
		Primitives: primitives,
		ListFormat: func(elem string) string { return "list of " + elem },
		TypeName:   link,
		AliasName:  link,
	}
}

// link renders a reference to t from a document about unit. Types of
// dependency-only interfaces have no document and are written as code.
func link(t *model.Type, unit *model.Interface) string {
	owner := t.Interface()
	switch {
	case owner == unit:
		return fmt.Sprintf("[%s](#%s)", t.Name, Anchor(t.Name))
	case owner.Exported:
		return fmt.Sprintf("[%s](%s#%s)", t.Symbol(), FileName(owner), Anchor(t.Name))
	default:
		return "`" + t.Symbol() + "`"
	}
}

// Cell escapes text for use inside a table cell.
func Cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

type indexEntry struct {
	Topic       string
	File        string
	Description string
	Messages    int
	Types       int
}

// generateIndex renders README.md listing every document.
func generateIndex(version string, entries []indexEntry) string {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Topic < entries[j].Topic })

	var sb strings.Builder
	sb.WriteString("# Interfaces\n\n")
	sb.WriteString("Generated by a2ml. Do not edit.\n\n")
	sb.WriteString(fmt.Sprintf("Message version: %s\n\n", version))

	if len(entries) == 0 {
		sb.WriteString("No exported interfaces.\n")
		return sb.String()
	}

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("- **[%s](./%s)**", e.Topic, e.File))
		if e.Description != "" {
			sb.WriteString(" - " + e.Description)
		}
		sb.WriteString(fmt.Sprintf(" (%d messages, %d types)\n", e.Messages, e.Types))
	}
	return sb.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
