package typegen

import (
	"sort"
	"strings"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/model"
)

// Native is a backend type together with the headers or imports it needs.
type Native struct {
	Type     string
	Includes []string
}

// TypeMapping configures how type references become backend types.
// Each generator supplies its own.
type TypeMapping struct {
	// Primitives maps every primitive keyword, dict included, to a native type
	Primitives map[string]Native

	// ListFormat wraps a resolved element type
	// e.g., C++: "std::vector<%s>", Markdown: "list of %s"
	ListFormat func(elem string) string

	// ListIncludes are needed by any list
	ListIncludes []string

	// TypeName renders a reference to a struct or enum from the unit being generated
	TypeName func(t *model.Type, unit *model.Interface) string

	// TypeIncludes returns what a reference to a struct or enum needs
	TypeIncludes func(t *model.Type) []string

	// AliasName renders a reference to an alias by name. When nil, aliases are
	// always rendered as their native type.
	AliasName func(t *model.Type, unit *model.Interface) string
}

// Resolved is the outcome of resolving one type reference.
type Resolved struct {
	// Ref is the reference as written
	Ref string

	// Native is the backend type with every alias expanded
	Native string

	// Declared is the backend type with aliases kept by name, for use where the
	// unit declares those aliases
	Declared string

	// Includes is every include the reference needs, sorted
	Includes []string

	// Aliases is every alias traversed, sorted by symbol
	Aliases []*model.Type

	// Types is every struct or enum reached, sorted by symbol
	Types []*model.Type
}

// Resolver resolves type references against a model.
type Resolver struct {
	model   *model.Model
	mapping *TypeMapping
	expand  map[string]bool
}

// NewResolver creates a resolver for m using a backend mapping.
func NewResolver(m *model.Model, mapping *TypeMapping) *Resolver {
	return &Resolver{model: m, mapping: mapping}
}

// WithExpanded returns a resolver that renders the given alias symbols by their
// native type in Resolved.Declared. Used when alias names collide within a unit.
func (r *Resolver) WithExpanded(symbols map[string]bool) *Resolver {
	return &Resolver{model: r.model, mapping: r.mapping, expand: symbols}
}

// Lookup finds the struct, enum or alias named by ref as seen from scope. A bare
// name or one in scope's namespace is looked up locally; any other namespace is
// searched across the whole model.
func (r *Resolver) Lookup(ref string, scope *model.Interface) (*model.Type, error) {
	ns, _ := model.SplitSymbol(ref)
	if ns == "" || ns == scope.Namespace {
		if t, ok := scope.Type(ref); ok {
			return t, nil
		}
	} else if t, ok := r.model.FindType(ref); ok {
		return t, nil
	}
	return nil, errors.NewKind(errors.UnknownTypeReference,
		"unknown type reference %q in %s", ref, scope.Topic).InFile(scope.SourceFile)
}

// Resolve resolves ref for a unit of the given interface.
func (r *Resolver) Resolve(ref string, unit *model.Interface) (*Resolved, error) {
	return r.run(ref, unit, unit)
}

// ResolveValue resolves a value's type for the unit that owns it. Errors name the
// value and its owner.
func (r *Resolver) ResolveValue(v *model.Value) (*Resolved, error) {
	res, err := r.run(v.TypeRef, v.Interface(), v.Interface())
	if err != nil {
		var ce *errors.CompileError
		if errors.As(err, &ce) {
			if ce.Field == "" {
				ce.Field = v.Name
			}
			if ce.Symbol == "" && v.Owner() != nil {
				ce.Symbol = v.Owner().OwnerSymbol()
			}
		}
		return nil, err
	}
	return res, nil
}

// ResolveAlias resolves the target of alias t, as declared in a unit of the given
// interface. The target is looked up from t's own interface.
func (r *Resolver) ResolveAlias(t *model.Type, unit *model.Interface) (*Resolved, error) {
	if !t.IsAlias() {
		return nil, errors.AssertionFailedf("%s is a %s, not an alias", t.Symbol(), t.Kind)
	}
	w := r.newWalk(unit)
	native, declared, err := w.resolve(t.AliasTarget, t.Interface(), []string{t.Symbol()})
	if err != nil {
		return nil, err
	}
	return w.result(t.Symbol(), native, declared), nil
}

func (r *Resolver) run(ref string, scope, unit *model.Interface) (*Resolved, error) {
	w := r.newWalk(unit)
	native, declared, err := w.resolve(ref, scope, nil)
	if err != nil {
		return nil, err
	}
	return w.result(ref, native, declared), nil
}

// walk accumulates includes, aliases and types while resolving one reference.
type walk struct {
	r        *Resolver
	unit     *model.Interface
	includes map[string]bool
	aliases  map[string]*model.Type
	types    map[string]*model.Type
}

func (r *Resolver) newWalk(unit *model.Interface) *walk {
	return &walk{
		r:        r,
		unit:     unit,
		includes: make(map[string]bool),
		aliases:  make(map[string]*model.Type),
		types:    make(map[string]*model.Type),
	}
}

func (w *walk) include(paths ...string) {
	for _, p := range paths {
		w.includes[p] = true
	}
}

// resolve follows ref from scope. chain holds the alias symbols being expanded,
// outermost first.
func (w *walk) resolve(ref string, scope *model.Interface, chain []string) (native, declared string, err error) {
	m := w.r.mapping

	switch {
	case model.IsPrimitive(ref):
		p, ok := m.Primitives[ref]
		if !ok {
			return "", "", errors.AssertionFailedf("backend has no mapping for primitive %s", ref)
		}
		w.include(p.Includes...)
		return p.Type, p.Type, nil

	case model.IsListRef(ref):
		elemNative, elemDeclared, err := w.resolve(model.ListElement(ref), scope, chain)
		if err != nil {
			return "", "", err
		}
		w.include(m.ListIncludes...)
		return m.ListFormat(elemNative), m.ListFormat(elemDeclared), nil
	}

	t, err := w.r.Lookup(ref, scope)
	if err != nil {
		return "", "", err
	}

	if !t.IsAlias() {
		w.types[t.Symbol()] = t
		if m.TypeIncludes != nil {
			w.include(m.TypeIncludes(t)...)
		}
		name := m.TypeName(t, w.unit)
		return name, name, nil
	}

	symbol := t.Symbol()
	for i, s := range chain {
		if s == symbol {
			cycle := append(append([]string{}, chain[i:]...), symbol)
			return "", "", errors.NewKind(errors.AliasCycle,
				"alias cycle %s", strings.Join(cycle, " -> ")).
				ForSymbol(symbol).InFile(t.Interface().SourceFile)
		}
	}
	w.aliases[symbol] = t

	next := append(append(make([]string, 0, len(chain)+1), chain...), symbol)
	native, _, err = w.resolve(t.AliasTarget, t.Interface(), next)
	if err != nil {
		return "", "", err
	}
	if m.AliasName == nil || w.r.expand[symbol] {
		return native, native, nil
	}
	return native, m.AliasName(t, w.unit), nil
}

func (w *walk) result(ref, native, declared string) *Resolved {
	res := &Resolved{
		Ref:      ref,
		Native:   native,
		Declared: declared,
		Includes: sortedKeys(w.includes),
	}
	for _, s := range sortedKeys(w.aliases) {
		res.Aliases = append(res.Aliases, w.aliases[s])
	}
	for _, s := range sortedKeys(w.types) {
		res.Types = append(res.Types, w.types[s])
	}
	return res
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
