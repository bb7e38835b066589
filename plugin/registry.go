package plugin

import (
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/teranos/a2ml/errors"
)

// Registry maps backend names to implementations of one capability
type Registry[T Plugin] struct {
	mu      sync.RWMutex
	plugins map[string]T
	kind    string // "parser" or "generator", used in messages
}

// NewRegistry creates an empty registry for backends of the given kind
func NewRegistry[T Plugin](kind string) *Registry[T] {
	return &Registry[T]{
		plugins: make(map[string]T),
		kind:    kind,
	}
}

// Kind returns the backend kind this registry holds
func (r *Registry[T]) Kind() string { return r.kind }

// Register registers a backend.
// Returns error if the name conflicts or the version constraint does not parse.
func (r *Registry[T]) Register(p T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metadata := p.Metadata()
	if metadata.Name == "" {
		return errors.Newf("%s backend has no name", r.kind)
	}

	if _, exists := r.plugins[metadata.Name]; exists {
		return errors.Newf("%s backend already registered: %s", r.kind, metadata.Name)
	}

	if metadata.MessageVersion != "" {
		if _, err := semver.NewConstraint(metadata.MessageVersion); err != nil {
			return errors.Wrapf(err, "invalid version constraint %s for %s backend %s",
				metadata.MessageVersion, r.kind, metadata.Name)
		}
	}

	r.plugins[metadata.Name] = p
	return nil
}

// MustRegister is Register for built-in backends, panicking on error
func (r *Registry[T]) MustRegister(p T) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get retrieves a backend by name
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// Lookup retrieves a backend by name, failing with UnknownBackend when it is not registered
func (r *Registry[T]) Lookup(name string) (T, error) {
	p, ok := r.Get(name)
	if !ok {
		err := errors.NewKind(errors.UnknownBackend, "unknown %s backend %q", r.kind, name)
		return p, errors.WithHintf(err, "available %s backends: %s", r.kind, strings.Join(r.List(), ", "))
	}
	return p, nil
}

// List returns all registered backend names in sorted order
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered backends sorted by name
func (r *Registry[T]) All() []T {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(names))
	for _, name := range names {
		out = append(out, r.plugins[name])
	}
	return out
}

// CheckVersion verifies that the named backend supports messageVersion.
// Pre-release suffixes are ignored so "4.0-beta" satisfies ">=4.0".
func (r *Registry[T]) CheckVersion(name, messageVersion string) error {
	p, err := r.Lookup(name)
	if err != nil {
		return err
	}
	return validateVersion(p.Metadata(), messageVersion)
}

// validateVersion checks if the backend constraint admits the message version
func validateVersion(metadata Metadata, messageVersion string) error {
	if metadata.MessageVersion == "" {
		// No version constraint specified
		return nil
	}

	ver, err := NormalizeVersion(messageVersion)
	if err != nil {
		return errors.WrapKind(err, errors.InvalidVersion, "invalid message version %s", messageVersion)
	}

	constraint, err := semver.NewConstraint(metadata.MessageVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", metadata.MessageVersion)
	}

	if !constraint.Check(ver) {
		return errors.NewKind(errors.InvalidVersion,
			"backend %s supports message version %s, but the run targets %s",
			metadata.Name, metadata.MessageVersion, messageVersion)
	}

	return nil
}

// NormalizeVersion parses a message version ("4.0", "3.1.2-rc_1") and drops any
// suffix after the first "-" before parsing, so suffixes need not be valid semver.
func NormalizeVersion(messageVersion string) (*semver.Version, error) {
	if i := strings.IndexByte(messageVersion, '-'); i >= 0 {
		messageVersion = messageVersion[:i]
	}
	v, err := semver.NewVersion(messageVersion)
	if err != nil {
		return nil, err
	}
	return semver.New(v.Major(), v.Minor(), v.Patch(), "", ""), nil
}
