// Package cpp generates C++ message bindings: one header and one source file per
// message, struct and enum of every exported interface.
//
// Output layout, relative to the output directory:
//
//	include/AASB/Message/<path>/<Name>.h
//	src/AASB/Message/<path>/<Name>.cpp
//
// Serialization uses nlohmann::json; message headers carry a generated id.
package cpp

import (
	"embed"
	"strings"
	"text/template"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/plugin"
	"github.com/teranos/a2ml/typegen"
)

// Name is the backend name used on the command line.
const Name = "cpp"

const (
	// MessageRoot prefixes every interface path in the output tree.
	MessageRoot = "AASB/Message"

	// UUIDInclude provides the id generator used by message constructors.
	UUIDInclude = "AACE/Engine/Utils/UUID/UUID.h"
)

// BaseIncludes are included by every header.
var BaseIncludes = []string{
	"cstdint",
	"iostream",
	"nlohmann/json.hpp",
	"string",
	"unordered_map",
	"vector",
}

// Primitives maps primitive keywords to C++ types.
var Primitives = map[string]typegen.Native{
	model.TypeString: {Type: "std::string"},
	model.TypeInt:    {Type: "int"},
	model.TypeLong:   {Type: "long"},
	model.TypeInt32:  {Type: "int32_t"},
	model.TypeInt64:  {Type: "int64_t"},
	model.TypeFloat:  {Type: "float"},
	model.TypeDouble: {Type: "double"},
	model.TypeBool:   {Type: "bool"},
	model.TypeDict:   {Type: "std::unordered_map<std::string, std::string>"},
}

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generator implements typegen.Generator for C++
type Generator struct {
	templates *typegen.Templates
}

// NewGenerator creates a new C++ generator
func NewGenerator() *Generator {
	return &Generator{
		templates: typegen.MustParseTemplates(templateFS, "templates/*.tmpl", template.FuncMap{
			"quote": Quote,
		}),
	}
}

// Metadata describes the C++ backend
func (g *Generator) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Name:        Name,
		Version:     "1.0.0",
		Description: "C++ message bindings (nlohmann::json)",
	}
}

// Generate writes a header and a source file per message, struct and enum.
func (g *Generator) Generate(m *model.Model, outDir string) ([]string, error) {
	if err := typegen.CheckVersions(m); err != nil {
		return nil, err
	}

	resolver := typegen.NewResolver(m, Mapping())
	out := typegen.NewOutput(outDir)

	for _, iface := range m.ExportedInterfaces() {
		var units []*unitData
		for _, msg := range iface.Messages() {
			u, err := buildMessageUnit(resolver, m, msg)
			if err != nil {
				return nil, err
			}
			units = append(units, u)
		}
		for _, t := range iface.Types(model.KindEnum, model.KindStruct) {
			u, err := buildTypeUnit(resolver, t)
			if err != nil {
				return nil, err
			}
			units = append(units, u)
		}

		for _, u := range units {
			if err := g.write(out, u); err != nil {
				return nil, err
			}
		}
		logger.Debugw("Generated interface",
			logger.FieldGenerator, Name,
			logger.FieldInterface, iface.Key(),
			logger.FieldCount, len(units),
		)
	}

	return out.Files(), nil
}

func (g *Generator) write(out *typegen.Output, u *unitData) error {
	header, err := g.templates.Render("header.h.tmpl", u)
	if err != nil {
		return errors.Wrapf(err, "render header for %s", u.Symbol)
	}
	source, err := g.templates.Render("source.cpp.tmpl", u)
	if err != nil {
		return errors.Wrapf(err, "render source for %s", u.Symbol)
	}

	if err := out.Write("include/"+u.HeaderPath, header); err != nil {
		return err
	}
	return out.Write("src/"+u.Dir+"/"+u.Name+".cpp", source)
}

// Mapping returns the C++ type mapping used by the resolver.
func Mapping() *typegen.TypeMapping {
	return &typegen.TypeMapping{
		Primitives: Primitives,
		ListFormat: func(elem string) string { return "std::vector<" + elem + ">" },
		TypeName: func(t *model.Type, unit *model.Interface) string {
			if t.Interface().Namespace == unit.Namespace {
				return t.Name
			}
			return Namespace(t.Interface().Namespace) + "::" + t.Name
		},
		TypeIncludes: func(t *model.Type) []string {
			return []string{HeaderPath(t.Interface().Path, t.Name)}
		},
		AliasName: func(t *model.Type, _ *model.Interface) string { return t.Name },
	}
}

// MessageDir returns the output directory for an interface path, relative to
// include/ and src/. The message root is not repeated when the path already has it.
func MessageDir(path string) string {
	p := strings.Trim(path, "/")
	if p == MessageRoot || strings.HasPrefix(p, MessageRoot+"/") {
		return p
	}
	if p == "" {
		return MessageRoot
	}
	return MessageRoot + "/" + p
}

// HeaderPath returns the include path of a unit.
func HeaderPath(path, name string) string {
	return MessageDir(path) + "/" + name + ".h"
}

// Namespace converts a dotted namespace into a C++ one, inserting "message"
// after a leading "aasb": aasb.alexa.speaker -> aasb::message::alexa::speaker.
func Namespace(ns string) string {
	return strings.Join(NamespaceSegments(ns), "::")
}

// NamespaceSegments is Namespace split into segments.
func NamespaceSegments(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 && parts[0] == "aasb" && (len(parts) == 1 || parts[1] != "message") {
		parts = append([]string{"aasb", "message"}, parts[1:]...)
	}
	return parts
}

// IncludeGuard derives a header guard from a symbol: a.b.Name -> A_B_NAME_H.
func IncludeGuard(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, ".", "_")) + "_H"
}

// Quote renders s as a C++ string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
