package schema

import (
	"strings"

	language "github.com/yahelnachum/graphql-query-generator/internal/language"
)

// Schema represents the complete GraphQL schema.
// Types reference each other by name only, so cyclic schemas are plain data.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive
	Description      string

	source *language.Schema
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// RootType returns the root type for the given operation kind.
func (s *Schema) RootType(op language.Operation) *Type {
	switch op {
	case language.Mutation:
		return s.GetMutationType()
	case language.Subscription:
		return s.GetSubscriptionType()
	default:
		return s.GetQueryType()
	}
}

// Source returns the validated toolkit schema this Schema was built from,
// or nil when it was assembled by hand.
func (s *Schema) Source() *language.Schema { return s.source }

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	Fields        []*Field      // For OBJECT and INTERFACE
	Interfaces    []string      // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes []string      // For INTERFACE and UNION
	EnumValues    []*EnumValue  // For ENUM
	InputFields   []*InputValue // For INPUT_OBJECT
	OneOf         bool
}

// IsComposite reports whether values of t carry a selection set.
func (t *Type) IsComposite() bool {
	switch t.Kind {
	case TypeKindObject, TypeKindInterface, TypeKindUnion:
		return true
	}
	return false
}

// IsLeaf reports whether t is a scalar or an enum.
func (t *Type) IsLeaf() bool {
	return t.Kind == TypeKindScalar || t.Kind == TypeKindEnum
}

func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field represents a field on an object or interface
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	Directives        []*DirectiveApplication
	IsDeprecated      bool
	DeprecationReason string
}

func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Directive returns the first application of the named directive, or nil.
func (f *Field) Directive(name string) *DirectiveApplication {
	for _, d := range f.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// Helper functions for TypeRef
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

func (t *TypeRef) String() string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case TypeRefKindNamed:
		return t.Named
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		inner := t.OfType.String()
		if strings.HasSuffix(inner, "!") {
			return inner
		}
		return inner + "!"
	}
	return "Unknown"
}

// ASTType converts the reference back into the toolkit's type expression,
// wrappers included.
func (t *TypeRef) ASTType() *language.Type {
	switch t.Kind {
	case TypeRefKindNonNull:
		inner := t.OfType.ASTType()
		inner.NonNull = true
		return inner
	case TypeRefKindList:
		return &language.Type{Elem: t.OfType.ASTType()}
	default:
		return &language.Type{NamedType: t.Named}
	}
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      *Value // nil when no default is declared
	IsDeprecated      bool
	DeprecationReason string
}

// IsRequired reports whether the value must be supplied: non-null without a default.
func (v *InputValue) IsRequired() bool {
	return v.Type.IsNonNull() && v.DefaultValue == nil
}

// Directive is a directive definition.
type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

func (d *Directive) Argument(name string) *InputValue {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// DirectiveApplication is a directive applied to a field definition.
type DirectiveApplication struct {
	Name      string
	Arguments []*DirectiveArgument
}

type DirectiveArgument struct {
	Name  string
	Value *Value
}

// Argument returns the literal supplied for name, or nil if omitted.
func (d *DirectiveApplication) Argument(name string) *Value {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
