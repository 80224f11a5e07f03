// Package conformance validates operations with graphql-go-tools, a GraphQL
// implementation independent of the gqlparser toolkit the generator is built on.
package conformance

import (
	"fmt"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/asttransform"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astvalidation"
)

// Checker holds a parsed schema definition. It is not safe for concurrent use.
type Checker struct {
	definition ast.Document
	validator  *astvalidation.OperationValidator
}

// NewChecker parses sdl and merges it with the base schema, which supplies
// built-in scalars, directives and introspection fields.
func NewChecker(sdl string) (*Checker, error) {
	def, report := astparser.ParseGraphqlDocumentString(sdl)
	if report.HasErrors() {
		return nil, fmt.Errorf("parse schema: %s", report.Error())
	}
	if err := asttransform.MergeDefinitionWithBaseSchema(&def); err != nil {
		return nil, fmt.Errorf("merge base schema: %w", err)
	}
	return &Checker{
		definition: def,
		validator:  astvalidation.DefaultOperationValidator(),
	}, nil
}

// Check parses query and validates it against the definition.
func (c *Checker) Check(query string) error {
	op, report := astparser.ParseGraphqlDocumentString(query)
	if report.HasErrors() {
		return fmt.Errorf("parse operation: %s", report.Error())
	}
	c.validator.Validate(&op, &c.definition, &report)
	if report.HasErrors() {
		return fmt.Errorf("validate operation: %s", report.Error())
	}
	return nil
}
