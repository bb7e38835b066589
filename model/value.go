package model

import (
	"strings"

	"github.com/teranos/a2ml/errors"
)

// Primitive type keywords of the definition language.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeLong   = "long"
	TypeInt32  = "int32"
	TypeInt64  = "int64"
	TypeFloat  = "float"
	TypeDouble = "double"
	TypeBool   = "bool"
	TypeDict   = "dict"
	TypeList   = "list"

	// ListPrefix introduces a homogeneous sequence: "list:" + element reference.
	ListPrefix = TypeList + ":"

	// DefaultValueType applies when a value definition omits "type".
	DefaultValueType = TypeString
)

// Primitives lists the primitive keywords in declaration order.
var Primitives = []string{
	TypeString, TypeInt, TypeLong, TypeInt32, TypeInt64, TypeFloat, TypeDouble, TypeBool, TypeDict,
}

// IsPrimitive reports whether ref is one of the primitive keywords (dict included).
func IsPrimitive(ref string) bool {
	for _, p := range Primitives {
		if ref == p {
			return true
		}
	}
	return false
}

// IsListRef reports whether ref denotes a list.
func IsListRef(ref string) bool {
	return ref == TypeList || strings.HasPrefix(ref, ListPrefix)
}

// ListElement returns the element reference of a list reference.
// A bare "list" is a list of strings.
func ListElement(ref string) string {
	if ref == TypeList {
		return TypeString
	}
	return strings.TrimPrefix(ref, ListPrefix)
}

// Owner is the Message or Type a Value belongs to.
type Owner interface {
	// OwnerInterface returns the interface that defines the owner.
	OwnerInterface() *Interface
	// OwnerSymbol returns the owner's qualified symbol.
	OwnerSymbol() string
}

// ValueSpec is the decoded, not yet validated, form of a value definition.
type ValueSpec struct {
	Name        string
	Type        string
	Description string
	Default     any
	Example     any
	Value       any
}

// Value is one typed field: a message payload/reply entry or a struct/enum member.
type Value struct {
	Name        string
	TypeRef     string
	Description string
	Default     any // nil when absent; absence makes the value required
	Example     any
	Fixed       any // "value" of an enum member

	owner Owner
}

// NewValue validates spec and creates a Value owned by owner.
func NewValue(owner Owner, spec ValueSpec) (*Value, error) {
	if spec.Name == "" {
		return nil, errors.NewKind(errors.MissingField, "value definition has no name").
			ForField("name").ForSymbol(owner.OwnerSymbol())
	}
	ref := strings.TrimSpace(spec.Type)
	if ref == "" {
		ref = DefaultValueType
	}
	return &Value{
		Name:        spec.Name,
		TypeRef:     ref,
		Description: spec.Description,
		Default:     spec.Default,
		Example:     spec.Example,
		Fixed:       spec.Value,
		owner:       owner,
	}, nil
}

// Owner returns the Message or Type this value belongs to.
func (v *Value) Owner() Owner { return v.owner }

// Interface returns the interface that defines this value's owner.
func (v *Value) Interface() *Interface {
	if v.owner == nil {
		return nil
	}
	return v.owner.OwnerInterface()
}

// Required is true when no default is declared.
func (v *Value) Required() bool { return v.Default == nil }

// Optional is the inverse of Required.
func (v *Value) Optional() bool { return !v.Required() }

// IsPrimitive reports whether the value's type is a primitive keyword.
func (v *Value) IsPrimitive() bool { return IsPrimitive(v.TypeRef) }

// IsList reports whether the value's type is a list.
func (v *Value) IsList() bool { return IsListRef(v.TypeRef) }

// IsDict reports whether the value's type is a string-to-string map.
func (v *Value) IsDict() bool { return v.TypeRef == TypeDict }

// ElementRef returns the list element reference, or the type reference itself for non-lists.
func (v *Value) ElementRef() string {
	if v.IsList() {
		return ListElement(v.TypeRef)
	}
	return v.TypeRef
}
