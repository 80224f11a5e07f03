package schema

import (
	"fmt"
	"sort"
	"strings"

	language "github.com/yahelnachum/graphql-query-generator/internal/language"
)

// ListSizeDirective names the directive that marks paginated list fields.
const ListSizeDirective = "listSize"

// ListSizeDirectiveSDL declares the @listSize directive consumed by the generator.
const ListSizeDirectiveSDL = `directive @listSize(
  assumedSize: Int
  slicingArguments: [String!]
  sizedFields: [String!]
  requireOneSlicingArgument: Boolean = true
) on FIELD_DEFINITION
`

func NewSchema(description string) *Schema {
	return &Schema{
		Types:       make(map[string]*Type),
		Directives:  make(map[string]*Directive),
		Description: description,
	}
}

func (s *Schema) SetQueryType(name string) *Schema        { s.QueryType = name; return s }
func (s *Schema) SetMutationType(name string) *Schema     { s.MutationType = name; return s }
func (s *Schema) SetSubscriptionType(name string) *Schema { s.SubscriptionType = name; return s }
func (s *Schema) AddType(t *Type) *Schema                 { s.Types[t.Name] = t; return s }
func (s *Schema) AddDirective(d *Directive) *Schema       { s.Directives[d.Name] = d; return s }

func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type           { t.Fields = append(t.Fields, f); return t }
func (t *Type) AddInterface(name string) *Type    { t.Interfaces = append(t.Interfaces, name); return t }
func (t *Type) AddPossibleType(name string) *Type { t.PossibleTypes = append(t.PossibleTypes, name); return t }
func (t *Type) AddEnumValue(v *EnumValue) *Type   { t.EnumValues = append(t.EnumValues, v); return t }
func (t *Type) AddInputField(v *InputValue) *Type { t.InputFields = append(t.InputFields, v); return t }
func (t *Type) SetOneOf(oneOf bool) *Type         { t.OneOf = oneOf; return t }

func NewField(name, description string, typ *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: typ}
}

func (f *Field) AddArgument(a *InputValue) *Field { f.Arguments = append(f.Arguments, a); return f }
func (f *Field) AddDirective(d *DirectiveApplication) *Field {
	f.Directives = append(f.Directives, d)
	return f
}
func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated = true
	f.DeprecationReason = reason
	return f
}

func NewEnumValue(name, description string) *EnumValue {
	return &EnumValue{Name: name, Description: description}
}

func (e *EnumValue) Deprecate(reason string) *EnumValue {
	e.IsDeprecated = true
	e.DeprecationReason = reason
	return e
}

func NewInputValue(name, description string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: typ}
}

func (v *InputValue) SetDefault(d *Value) *InputValue { v.DefaultValue = d; return v }
func (v *InputValue) Deprecate(reason string) *InputValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

func NewDirective(name, description string) *Directive {
	return &Directive{Name: name, Description: description}
}

func (d *Directive) AddArgument(a *InputValue) *Directive { d.Arguments = append(d.Arguments, a); return d }
func (d *Directive) SetRepeatable(r bool) *Directive      { d.IsRepeatable = r; return d }

// NewDirectiveApplication builds an application from name/value pairs.
func NewDirectiveApplication(name string, args ...*DirectiveArgument) *DirectiveApplication {
	return &DirectiveApplication{Name: name, Arguments: args}
}

// BuildFromAST builds the generator's schema model from a schema validated by
// the toolkit. Introspection types and fields (names starting with "__") are
// left out.
func BuildFromAST(src *language.Schema) (*Schema, error) {
	if src == nil {
		return nil, fmt.Errorf("schema is nil")
	}
	s := NewSchema(src.Description)
	s.source = src
	if src.Query != nil {
		s.SetQueryType(src.Query.Name)
	}
	if src.Mutation != nil {
		s.SetMutationType(src.Mutation.Name)
	}
	if src.Subscription != nil {
		s.SetSubscriptionType(src.Subscription.Name)
	}

	for name, def := range src.Types {
		if strings.HasPrefix(name, "__") {
			continue
		}
		switch def.Kind {
		case language.Object:
			s.AddType(buildComposite(def, TypeKindObject))
		case language.Interface:
			t := buildComposite(def, TypeKindInterface)
			var possible []string
			for _, p := range src.PossibleTypes[def.Name] {
				possible = append(possible, p.Name)
			}
			sort.Strings(possible)
			for _, name := range possible {
				t.AddPossibleType(name)
			}
			s.AddType(t)
		case language.Union:
			t := NewType(def.Name, TypeKindUnion, def.Description)
			for _, member := range def.Types {
				t.AddPossibleType(member)
			}
			s.AddType(t)
		case language.Enum:
			s.AddType(buildEnum(def))
		case language.InputObject:
			s.AddType(buildInput(def))
		case language.Scalar:
			s.AddType(NewType(def.Name, TypeKindScalar, def.Description))
		default:
			return nil, fmt.Errorf("type %q has unsupported kind %q", def.Name, def.Kind)
		}
	}

	for _, dir := range src.Directives {
		s.AddDirective(buildDirective(dir))
	}
	return s, nil
}

// BuildFromSDL loads SDL through the toolkit and builds the schema model.
// The @listSize declaration is added when the SDL does not provide one.
func BuildFromSDL(sdl string) (*Schema, error) {
	sources := []*language.Source{{Name: "schema.graphql", Input: sdl}}
	doc, err := language.ParseSchema(sources[0])
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if doc.Directives.ForName(ListSizeDirective) == nil {
		sources = append(sources, &language.Source{Name: "listsize.graphql", Input: ListSizeDirectiveSDL})
	}
	src, err := language.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return BuildFromAST(src)
}

// AST returns the toolkit schema backing s. A hand-assembled schema is
// rendered to SDL and loaded, so it must declare every directive it applies.
func (s *Schema) AST() (*language.Schema, error) {
	if s.source != nil {
		return s.source, nil
	}
	src, err := language.LoadSchema(&language.Source{Name: "rendered.graphql", Input: Render(s)})
	if err != nil {
		return nil, fmt.Errorf("load rendered schema: %w", err)
	}
	return src, nil
}

func buildComposite(def *language.Definition, kind TypeKind) *Type {
	t := NewType(def.Name, kind, def.Description)
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, fd := range def.Fields {
		if strings.HasPrefix(fd.Name, "__") {
			continue
		}
		t.AddField(buildField(fd))
	}
	return t
}

func buildField(def *language.FieldDefinition) *Field {
	f := NewField(def.Name, def.Description, buildTypeRef(def.Type))
	for _, arg := range def.Arguments {
		f.AddArgument(buildArgument(arg))
	}
	for _, dir := range def.Directives {
		if dir.Name == "deprecated" {
			f.Deprecate(deprecationReason(dir))
			continue
		}
		f.AddDirective(buildDirectiveApplication(dir))
	}
	return f
}

func buildDirectiveApplication(dir *language.Directive) *DirectiveApplication {
	d := NewDirectiveApplication(dir.Name)
	for _, arg := range dir.Arguments {
		d.Arguments = append(d.Arguments, &DirectiveArgument{Name: arg.Name, Value: buildValue(arg.Value)})
	}
	return d
}

func deprecationReason(dir *language.Directive) string {
	if arg := dir.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return arg.Value.Raw
	}
	return ""
}

func buildArgument(def *language.ArgumentDefinition) *InputValue {
	in := NewInputValue(def.Name, def.Description, buildTypeRef(def.Type)).
		SetDefault(buildValue(def.DefaultValue))
	if dir := def.Directives.ForName("deprecated"); dir != nil {
		in.Deprecate(deprecationReason(dir))
	}
	return in
}

func buildEnum(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindEnum, def.Description)
	for _, v := range def.EnumValues {
		e := NewEnumValue(v.Name, v.Description)
		if dir := v.Directives.ForName("deprecated"); dir != nil {
			e.Deprecate(deprecationReason(dir))
		}
		t.AddEnumValue(e)
	}
	return t
}

func buildInput(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindInputObject, def.Description).
		SetOneOf(def.Directives.ForName("oneOf") != nil)
	for _, fd := range def.Fields {
		in := NewInputValue(fd.Name, fd.Description, buildTypeRef(fd.Type)).
			SetDefault(buildValue(fd.DefaultValue))
		if dir := fd.Directives.ForName("deprecated"); dir != nil {
			in.Deprecate(deprecationReason(dir))
		}
		t.AddInputField(in)
	}
	return t
}

func buildTypeRef(t *language.Type) *TypeRef {
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(buildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

func buildDirective(dir *language.DirectiveDefinition) *Directive {
	d := NewDirective(dir.Name, dir.Description).SetRepeatable(dir.IsRepeatable)
	for _, loc := range dir.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, arg := range dir.Arguments {
		d.AddArgument(buildArgument(arg))
	}
	return d
}
