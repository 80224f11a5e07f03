package language

import (
	"bytes"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// LoadSchema parses and validates SDL sources together with the GraphQL prelude.
func LoadSchema(sources ...*Source) (*Schema, error) {
	s, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ParseSchema parses SDL without the prelude or validation.
func ParseSchema(source *Source) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(source)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseValue parses a constant literal, such as a default value reported by
// introspection.
func ParseValue(literal string) (*Value, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: "query($v: Boolean = " + literal + ") { __typename }"})
	if err != nil {
		return nil, err
	}
	return doc.Operations[0].VariableDefinitions[0].DefaultValue, nil
}

// LoadQuery parses source and validates it against schema.
func LoadQuery(schema *Schema, source string) (*QueryDocument, error) {
	doc, errs := gqlparser.LoadQuery(schema, source)
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// CoerceVariables checks variable values against the operation's variable
// definitions. op must come from a validated document.
func CoerceVariables(schema *Schema, op *OperationDefinition, vars map[string]any) (map[string]any, error) {
	coerced, err := validator.VariableValues(schema, op, vars)
	if err != nil {
		return nil, err
	}
	return coerced, nil
}

// FormatQuery prints doc as GraphQL source text.
func FormatQuery(doc *QueryDocument) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return buf.String()
}
