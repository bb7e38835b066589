package driver

import (
	"github.com/teranos/a2ml/parser"
	"github.com/teranos/a2ml/plugin"
	"github.com/teranos/a2ml/typegen"
	"github.com/teranos/a2ml/typegen/cpp"
	"github.com/teranos/a2ml/typegen/markdown"
)

// Default backend names.
const (
	DefaultParser    = parser.A2MLName
	DefaultGenerator = cpp.Name
)

// Parsers returns a registry holding the built-in parsers.
func Parsers() *plugin.Registry[parser.Parser] {
	return parser.Registry()
}

// Generators returns a registry holding the built-in generators.
func Generators() *plugin.Registry[typegen.Generator] {
	r := plugin.NewRegistry[typegen.Generator]("generator")
	r.MustRegister(cpp.NewGenerator())
	r.MustRegister(markdown.NewGenerator())
	return r
}
