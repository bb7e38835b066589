package model

import (
	"github.com/teranos/a2ml/errors"
)

// TypeKind distinguishes the three kinds of named types.
type TypeKind string

const (
	KindEnum   TypeKind = "enum"
	KindStruct TypeKind = "struct"
	KindAlias  TypeKind = "alias"
)

// TypeKinds lists every kind in lookup order.
var TypeKinds = []TypeKind{KindEnum, KindStruct, KindAlias}

// ParseTypeKind validates a kind name.
func ParseTypeKind(s string) (TypeKind, bool) {
	for _, k := range TypeKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// TypeSpec is the decoded form of a type definition.
type TypeSpec struct {
	Name        string
	Kind        string
	Alias       string
	Description string
	Values      []ValueSpec
}

// Type is a named enum, struct or alias defined within an Interface.
type Type struct {
	Name        string
	Kind        TypeKind
	Values      []*Value // enum members or struct fields, in declaration order
	AliasTarget string   // type reference, alias kind only
	Description string

	iface *Interface
}

// NewType validates spec and creates a Type defined by iface.
// The type is not registered; call Interface.AddType.
func NewType(iface *Interface, spec TypeSpec) (*Type, error) {
	if spec.Name == "" {
		return nil, errors.NewKind(errors.MissingField, "type definition has no name").
			ForField("name").InFile(iface.SourceFile)
	}
	symbol := Qualify(iface.Namespace, spec.Name)
	if spec.Kind == "" {
		return nil, errors.NewKind(errors.MissingField, "type definition has no kind").
			ForField("type").ForSymbol(symbol).InFile(iface.SourceFile)
	}
	kind, ok := ParseTypeKind(spec.Kind)
	if !ok {
		return nil, errors.NewKind(errors.MalformedDocument,
			"invalid type kind %q, expecting one of enum, struct, alias", spec.Kind).
			ForField("type").ForSymbol(symbol).InFile(iface.SourceFile)
	}
	if kind == KindAlias && spec.Alias == "" {
		return nil, errors.NewKind(errors.MissingField, "alias type has no target").
			ForField("alias").ForSymbol(symbol).InFile(iface.SourceFile)
	}

	t := &Type{
		Name:        spec.Name,
		Kind:        kind,
		Description: spec.Description,
		iface:       iface,
	}
	if kind == KindAlias {
		t.AliasTarget = spec.Alias
		return t, nil
	}
	for _, vs := range spec.Values {
		v, err := NewValue(t, vs)
		if err != nil {
			return nil, err
		}
		t.Values = append(t.Values, v)
	}
	return t, nil
}

// Symbol returns "{namespace}.{name}".
func (t *Type) Symbol() string { return Qualify(t.iface.Namespace, t.Name) }

// Interface returns the defining interface.
func (t *Type) Interface() *Interface { return t.iface }

// OwnerInterface implements Owner.
func (t *Type) OwnerInterface() *Interface { return t.iface }

// OwnerSymbol implements Owner.
func (t *Type) OwnerSymbol() string { return t.Symbol() }

func (t *Type) IsEnum() bool   { return t.Kind == KindEnum }
func (t *Type) IsStruct() bool { return t.Kind == KindStruct }
func (t *Type) IsAlias() bool  { return t.Kind == KindAlias }

// ValueNames returns member names in declaration order.
func (t *Type) ValueNames() []string {
	names := make([]string, len(t.Values))
	for i, v := range t.Values {
		names[i] = v.Name
	}
	return names
}
