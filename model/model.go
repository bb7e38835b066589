package model

import (
	"sort"

	"github.com/teranos/a2ml/errors"
)

// Model is the full set of parsed Interfaces for one compilation run.
type Model struct {
	// Version is the run's target message version.
	Version string

	interfaces map[string]*Interface
}

// Stats summarizes a model for logging.
type Stats struct {
	Interfaces int
	Exported   int
	Messages   int
	Types      int
}

// New creates an empty model for the given message version.
func New(version string) *Model {
	return &Model{
		Version:    version,
		interfaces: make(map[string]*Interface),
	}
}

// Key returns the model key for a topic: "{topic}:{run version}".
func (m *Model) Key(topic string) string {
	return topic + ":" + m.Version
}

// AddInterface registers iface under its key. An interface without a declared
// version takes the run version.
func (m *Model) AddInterface(iface *Interface) error {
	key := m.Key(iface.Topic)
	if _, exists := m.interfaces[key]; exists {
		return errors.NewKind(errors.DuplicateInterface, "interface already defined: %s", key).
			ForSymbol(key).InFile(iface.SourceFile)
	}
	if iface.Version == "" {
		iface.Version = m.Version
	}
	iface.key = key
	m.interfaces[key] = iface
	return nil
}

// Interface returns the interface registered under key.
func (m *Model) Interface(key string) (*Interface, bool) {
	iface, ok := m.interfaces[key]
	return iface, ok
}

// HasInterface reports whether key is registered.
func (m *Model) HasInterface(key string) bool {
	_, ok := m.interfaces[key]
	return ok
}

// Keys returns every interface key, sorted.
func (m *Model) Keys() []string {
	keys := make([]string, 0, len(m.interfaces))
	for k := range m.interfaces {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interfaces returns every interface sorted by key.
func (m *Model) Interfaces() []*Interface {
	keys := m.Keys()
	out := make([]*Interface, len(keys))
	for i, k := range keys {
		out[i] = m.interfaces[k]
	}
	return out
}

// ExportedInterfaces returns the interfaces parsed from input directories, sorted by key.
func (m *Model) ExportedInterfaces() []*Interface {
	var out []*Interface
	for _, iface := range m.Interfaces() {
		if iface.Exported {
			out = append(out, iface)
		}
	}
	return out
}

// FindType searches every interface, in key order, for a type with the given
// fully qualified symbol.
func (m *Model) FindType(symbol string) (*Type, bool) {
	for _, iface := range m.Interfaces() {
		if t, ok := iface.Type(symbol); ok {
			return t, true
		}
	}
	return nil, false
}

// Stats counts interfaces, messages and types.
func (m *Model) Stats() Stats {
	var s Stats
	for _, iface := range m.interfaces {
		s.Interfaces++
		if iface.Exported {
			s.Exported++
		}
		s.Messages += len(iface.messages)
		for _, byKind := range iface.types {
			s.Types += len(byKind)
		}
	}
	return s
}
