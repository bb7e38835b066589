package model

import (
	"sort"

	"github.com/teranos/a2ml/errors"
)

// InterfaceSpec is the decoded form of a definition document's header.
type InterfaceSpec struct {
	Topic       string
	Namespace   string
	Path        string
	Version     string // declared version, may be empty
	Description string
	SourceFile  string
	Exported    bool
}

// Interface is a namespace-scoped bundle of Messages and Types.
type Interface struct {
	Topic       string
	Namespace   string
	Path        string
	Version     string // declared version, or the run version when none was declared
	Description string
	SourceFile  string
	Exported    bool // false for dependency-only interfaces

	key      string
	messages map[string]*Message
	types    map[TypeKind]map[string]*Type
}

// NewInterface validates the required header fields and creates an empty Interface.
func NewInterface(spec InterfaceSpec) (*Interface, error) {
	required := []struct {
		field string
		value string
	}{
		{"topic", spec.Topic},
		{"namespace", spec.Namespace},
		{"path", spec.Path},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, errors.NewKind(errors.MissingField, "missing required field %q", r.field).
				ForField(r.field).InFile(spec.SourceFile)
		}
	}

	types := make(map[TypeKind]map[string]*Type, len(TypeKinds))
	for _, k := range TypeKinds {
		types[k] = make(map[string]*Type)
	}

	return &Interface{
		Topic:       spec.Topic,
		Namespace:   spec.Namespace,
		Path:        spec.Path,
		Version:     spec.Version,
		Description: spec.Description,
		SourceFile:  spec.SourceFile,
		Exported:    spec.Exported,
		messages:    make(map[string]*Message),
		types:       types,
	}, nil
}

// Name is the interface's display name, its topic.
func (i *Interface) Name() string { return i.Topic }

// Key returns "{topic}:{run version}". It is assigned by Model.AddInterface.
func (i *Interface) Key() string { return i.key }

// AddMessage registers a message; the symbol must be unique within the interface.
func (i *Interface) AddMessage(m *Message) error {
	symbol := m.Symbol()
	if _, exists := i.messages[symbol]; exists {
		return errors.NewKind(errors.DuplicateMessage, "message already defined").
			ForSymbol(symbol).InFile(i.SourceFile)
	}
	i.messages[symbol] = m
	return nil
}

// Message looks up a message by bare name or qualified symbol.
func (i *Interface) Message(symbol string) (*Message, bool) {
	if m, ok := i.messages[symbol]; ok {
		return m, true
	}
	m, ok := i.messages[Qualify(i.Namespace, symbol)]
	return m, ok
}

// HasMessage reports whether Message would succeed.
func (i *Interface) HasMessage(symbol string) bool {
	_, ok := i.Message(symbol)
	return ok
}

// Messages returns every message sorted by symbol.
func (i *Interface) Messages() []*Message {
	symbols := i.MessageSymbols()
	out := make([]*Message, len(symbols))
	for n, s := range symbols {
		out[n] = i.messages[s]
	}
	return out
}

// MessageSymbols returns message symbols sorted, optionally restricted to the given directions.
func (i *Interface) MessageSymbols(directions ...Direction) []string {
	symbols := make([]string, 0, len(i.messages))
	for s, m := range i.messages {
		if len(directions) > 0 && !containsDirection(directions, m.Direction) {
			continue
		}
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

func containsDirection(dirs []Direction, d Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}

// AddType registers a type. A symbol may be defined only once per interface,
// across all kinds, since every enum and struct becomes its own output unit.
func (i *Interface) AddType(t *Type) error {
	symbol := t.Symbol()
	if existing, exists := i.Type(symbol); exists {
		return errors.NewKind(errors.DuplicateType, "type already defined as %s", existing.Kind).
			ForSymbol(symbol).InFile(i.SourceFile)
	}
	i.types[t.Kind][symbol] = t
	return nil
}

// Type looks up a type by bare name or qualified symbol, searching the given kinds
// (all kinds when none are given).
func (i *Interface) Type(symbol string, kinds ...TypeKind) (*Type, bool) {
	if len(kinds) == 0 {
		kinds = TypeKinds
	}
	norm := Qualify(i.Namespace, symbol)
	for _, k := range kinds {
		if t, ok := i.types[k][norm]; ok {
			return t, true
		}
	}
	return nil, false
}

// HasType reports whether Type would succeed.
func (i *Interface) HasType(symbol string, kinds ...TypeKind) bool {
	_, ok := i.Type(symbol, kinds...)
	return ok
}

// Types returns the types of the given kinds (all kinds when none are given), sorted by symbol.
func (i *Interface) Types(kinds ...TypeKind) []*Type {
	symbols := i.TypeSymbols(kinds...)
	out := make([]*Type, 0, len(symbols))
	for _, s := range symbols {
		t, _ := i.Type(s, kinds...)
		out = append(out, t)
	}
	return out
}

// TypeSymbols returns type symbols of the given kinds (all kinds when none are given), sorted.
func (i *Interface) TypeSymbols(kinds ...TypeKind) []string {
	if len(kinds) == 0 {
		kinds = TypeKinds
	}
	var symbols []string
	for _, k := range kinds {
		for s := range i.types[k] {
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	return symbols
}
