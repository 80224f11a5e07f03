package generator

import (
	"fmt"

	language "github.com/yahelnachum/graphql-query-generator/internal/language"
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

// accessor answers read-only questions about the type graph.
type accessor struct {
	schema *schema.Schema
}

func (a accessor) rootType(op language.Operation) (*schema.Type, error) {
	if a.schema == nil {
		return nil, &SchemaError{Op: "root type", Err: fmt.Errorf("schema is nil")}
	}
	t := a.schema.RootType(op)
	if t == nil {
		return nil, &SchemaError{Op: "root type", Type: string(op), Err: fmt.Errorf("schema defines no %s root type", op)}
	}
	if t.Kind != schema.TypeKindObject {
		return nil, &SchemaError{Op: "root type", Type: t.Name, Err: fmt.Errorf("root type must be an object, got %s", t.Kind)}
	}
	return t, nil
}

func (a accessor) lookup(name string) (*schema.Type, error) {
	t := a.schema.Types[name]
	if t == nil {
		return nil, &SchemaError{Op: "lookup", Type: name, Err: fmt.Errorf("type is not defined")}
	}
	return t, nil
}

// namedType resolves the innermost named type of ref.
func (a accessor) namedType(ref *schema.TypeRef) (*schema.Type, error) {
	named, _ := unwrap(ref)
	return a.lookup(named)
}

// unwrap strips list and non-null wrappers, outermost first.
func unwrap(ref *schema.TypeRef) (string, []schema.TypeRefKind) {
	var wrappers []schema.TypeRefKind
	for ref != nil && ref.Kind != schema.TypeRefKindNamed {
		wrappers = append(wrappers, ref.Kind)
		ref = ref.OfType
	}
	if ref == nil {
		return "", wrappers
	}
	return ref.Named, wrappers
}

func (a accessor) fieldsOf(t *schema.Type) []*schema.Field { return t.Fields }

func (a accessor) argumentsOf(f *schema.Field) []*schema.InputValue { return f.Arguments }

func (a accessor) inputFieldsOf(t *schema.Type) []*schema.InputValue { return t.InputFields }

func (a accessor) isRequired(v *schema.InputValue) bool { return v.IsRequired() }

func (a accessor) directivesOf(f *schema.Field) []*schema.DirectiveApplication { return f.Directives }

// directiveDefinition returns the schema's declaration of name, if any.
func (a accessor) directiveDefinition(name string) *schema.Directive {
	return a.schema.Directives[name]
}
