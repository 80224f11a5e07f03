// Package introspection builds the schema model from an introspection
// response, for servers whose SDL is not at hand.
//
// Introspection does not report applied directives, so fields built this way
// carry no @listSize and only their required arguments are bound.
package introspection

import (
	"encoding/json"
	"fmt"
	"strings"

	language "github.com/yahelnachum/graphql-query-generator/internal/language"
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

// Query is the introspection query whose response BuildSchema accepts.
const Query = `query IntrospectionQuery {
  __schema {
    description
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types { ...FullType }
    directives {
      name
      description
      isRepeatable
      locations
      args { ...InputValue }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args { ...InputValue }
    type { ...TypeRef }
    isDeprecated
    deprecationReason
  }
  inputFields { ...InputValue }
  interfaces { ...TypeRef }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes { ...TypeRef }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType { kind name }
            }
          }
        }
      }
    }
  }
}
`

type response struct {
	Data   *result     `json:"data"`
	Schema *schemaJSON `json:"__schema"`
}

type result struct {
	Schema *schemaJSON `json:"__schema"`
}

type schemaJSON struct {
	Description      string          `json:"description"`
	QueryType        *namedJSON      `json:"queryType"`
	MutationType     *namedJSON      `json:"mutationType"`
	SubscriptionType *namedJSON      `json:"subscriptionType"`
	Types            []typeJSON      `json:"types"`
	Directives       []directiveJSON `json:"directives"`
}

type namedJSON struct {
	Name string `json:"name"`
}

type typeJSON struct {
	Kind          string           `json:"kind"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Fields        []fieldJSON      `json:"fields"`
	InputFields   []inputValueJSON `json:"inputFields"`
	Interfaces    []typeRefJSON    `json:"interfaces"`
	EnumValues    []enumValueJSON  `json:"enumValues"`
	PossibleTypes []typeRefJSON    `json:"possibleTypes"`
	IsOneOf       bool             `json:"isOneOf"`
}

type fieldJSON struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Args              []inputValueJSON `json:"args"`
	Type              *typeRefJSON     `json:"type"`
	IsDeprecated      bool             `json:"isDeprecated"`
	DeprecationReason *string          `json:"deprecationReason"`
}

type inputValueJSON struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Type              *typeRefJSON `json:"type"`
	DefaultValue      *string      `json:"defaultValue"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason"`
}

type enumValueJSON struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

type typeRefJSON struct {
	Kind   string       `json:"kind"`
	Name   *string      `json:"name"`
	OfType *typeRefJSON `json:"ofType"`
}

type directiveJSON struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Locations    []string         `json:"locations"`
	Args         []inputValueJSON `json:"args"`
	IsRepeatable bool             `json:"isRepeatable"`
}

// BuildSchema decodes an introspection response, either the full
// {"data": {"__schema": ...}} envelope or the bare {"__schema": ...} object,
// and loads it through the toolkit so the result validates generated queries.
func BuildSchema(data []byte) (*schema.Schema, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode introspection: %w", err)
	}
	raw := resp.Schema
	if resp.Data != nil && resp.Data.Schema != nil {
		raw = resp.Data.Schema
	}
	if raw == nil {
		return nil, fmt.Errorf("decode introspection: no __schema in response")
	}

	model, err := buildModel(raw)
	if err != nil {
		return nil, err
	}
	return schema.BuildFromSDL(schema.Render(model))
}

func buildModel(raw *schemaJSON) (*schema.Schema, error) {
	s := schema.NewSchema(raw.Description)
	if raw.QueryType != nil {
		s.SetQueryType(raw.QueryType.Name)
	}
	if raw.MutationType != nil {
		s.SetMutationType(raw.MutationType.Name)
	}
	if raw.SubscriptionType != nil {
		s.SetSubscriptionType(raw.SubscriptionType.Name)
	}

	for _, t := range raw.Types {
		if strings.HasPrefix(t.Name, "__") {
			continue
		}
		typ, err := buildType(t)
		if err != nil {
			return nil, err
		}
		s.AddType(typ)
	}

	for _, d := range raw.Directives {
		dir := schema.NewDirective(d.Name, d.Description).SetRepeatable(d.IsRepeatable)
		dir.Locations = append(dir.Locations, d.Locations...)
		for _, a := range d.Args {
			in, err := buildInputValue(a)
			if err != nil {
				return nil, fmt.Errorf("directive @%s: %w", d.Name, err)
			}
			dir.AddArgument(in)
		}
		s.AddDirective(dir)
	}
	return s, nil
}

func buildType(t typeJSON) (*schema.Type, error) {
	typ := schema.NewType(t.Name, schema.TypeKind(t.Kind), t.Description)
	switch typ.Kind {
	case schema.TypeKindScalar:
	case schema.TypeKindObject, schema.TypeKindInterface:
		for _, i := range t.Interfaces {
			typ.AddInterface(i.name())
		}
		for _, f := range t.Fields {
			field, err := buildField(f)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", t.Name, err)
			}
			typ.AddField(field)
		}
	case schema.TypeKindUnion:
		for _, p := range t.PossibleTypes {
			typ.AddPossibleType(p.name())
		}
	case schema.TypeKindEnum:
		for _, v := range t.EnumValues {
			ev := schema.NewEnumValue(v.Name, v.Description)
			if v.IsDeprecated {
				ev.Deprecate(deref(v.DeprecationReason))
			}
			typ.AddEnumValue(ev)
		}
	case schema.TypeKindInputObject:
		typ.SetOneOf(t.IsOneOf)
		for _, f := range t.InputFields {
			in, err := buildInputValue(f)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", t.Name, err)
			}
			typ.AddInputField(in)
		}
	default:
		return nil, fmt.Errorf("type %s has unsupported kind %q", t.Name, t.Kind)
	}
	return typ, nil
}

func buildField(f fieldJSON) (*schema.Field, error) {
	ref, err := f.Type.typeRef()
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	field := schema.NewField(f.Name, f.Description, ref)
	for _, a := range f.Args {
		in, err := buildInputValue(a)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		field.AddArgument(in)
	}
	if f.IsDeprecated {
		field.Deprecate(deref(f.DeprecationReason))
	}
	return field, nil
}

func buildInputValue(v inputValueJSON) (*schema.InputValue, error) {
	ref, err := v.Type.typeRef()
	if err != nil {
		return nil, fmt.Errorf("input value %s: %w", v.Name, err)
	}
	in := schema.NewInputValue(v.Name, v.Description, ref)
	if v.DefaultValue != nil {
		lit, err := language.ParseValue(*v.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("input value %s: default %q: %w", v.Name, *v.DefaultValue, err)
		}
		in.SetDefault(schema.ValueFromAST(lit))
	}
	if v.IsDeprecated {
		in.Deprecate(deref(v.DeprecationReason))
	}
	return in, nil
}

func (r *typeRefJSON) typeRef() (*schema.TypeRef, error) {
	if r == nil {
		return nil, fmt.Errorf("missing type reference")
	}
	switch r.Kind {
	case "NON_NULL", "LIST":
		inner, err := r.OfType.typeRef()
		if err != nil {
			return nil, err
		}
		if r.Kind == "LIST" {
			return schema.ListType(inner), nil
		}
		return schema.NonNullType(inner), nil
	}
	if r.Name == nil || *r.Name == "" {
		return nil, fmt.Errorf("named type of kind %s has no name", r.Kind)
	}
	return schema.NamedType(*r.Name), nil
}

func (r typeRefJSON) name() string { return deref(r.Name) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
