// Package querygen generates valid GraphQL operations for arbitrary schemas,
// deterministically from a seed.
//
//	s, err := querygen.ParseSchema(sdl)
//	res, err := querygen.Generate(ctx, s, querygen.WithSeed(7), querygen.WithPlaceholders(true))
//	fmt.Println(res.Query())
//
// Generated operations are named RandomQuery. Required arguments and at most
// one @listSize slicing argument per field are bound to variables named
// Parent__field__argument.
package querygen

import (
	"context"
	"fmt"

	conformance "github.com/yahelnachum/graphql-query-generator/internal/conformance"
	generator "github.com/yahelnachum/graphql-query-generator/internal/generator"
	language "github.com/yahelnachum/graphql-query-generator/internal/language"
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

type (
	Schema            = schema.Schema
	Result            = generator.Result
	Variable          = generator.Variable
	Config            = generator.Config
	RootFieldStrategy = generator.RootFieldStrategy
	SchemaError       = generator.SchemaError
	Operation         = language.Operation
)

const (
	Query        = language.Query
	Mutation     = language.Mutation
	Subscription = language.Subscription

	FirstField  = generator.FirstField
	RandomField = generator.RandomField

	OperationName        = generator.OperationName
	ListSizeDirectiveSDL = schema.ListSizeDirectiveSDL
)

var (
	ErrSchema             = generator.ErrSchema
	ErrEmptySchema        = generator.ErrEmptySchema
	ErrUnsatisfiableInput = generator.ErrUnsatisfiableInput
)

// Option configures a generation run.
type Option func(*Config)

func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// WithPlaceholders controls whether Result.Variables is filled.
func WithPlaceholders(provide bool) Option {
	return func(c *Config) { c.ProvidePlaceholders = provide }
}

func WithOperation(op Operation) Option { return func(c *Config) { c.Operation = op } }

func WithMaxDepth(depth int) Option { return func(c *Config) { c.MaxDepth = depth } }

func WithMaxInputDepth(depth int) Option { return func(c *Config) { c.MaxInputDepth = depth } }

func WithRootField(strategy RootFieldStrategy) Option {
	return func(c *Config) { c.RootField = strategy }
}

// WithPlaceholder sets the value synthesized for the named scalar.
func WithPlaceholder(scalar string, value any) Option {
	return func(c *Config) {
		if c.Placeholders == nil {
			c.Placeholders = make(map[string]any)
		}
		c.Placeholders[scalar] = value
	}
}

// ParseSchema loads SDL into the generator's schema model. The @listSize
// declaration is added when the SDL does not provide one.
func ParseSchema(sdl string) (*Schema, error) {
	return schema.BuildFromSDL(sdl)
}

// Generate produces one operation for s.
func Generate(ctx context.Context, s *Schema, opts ...Option) (*Result, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return generator.Generate(ctx, s, cfg)
}

// GenerateFromSDL parses sdl and generates one operation for it.
func GenerateFromSDL(ctx context.Context, sdl string, opts ...Option) (*Result, error) {
	s, err := ParseSchema(sdl)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, s, opts...)
}

// Validate prints res, parses it back and validates it against s. When res
// carries placeholder values they are checked against the declared
// variable types.
func Validate(s *Schema, res *Result) error {
	src, err := s.AST()
	if err != nil {
		return err
	}
	doc, err := language.LoadQuery(src, res.Query())
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	if res.Variables == nil {
		return nil
	}
	if _, err := language.CoerceVariables(src, doc.Operations[0], res.Variables); err != nil {
		return fmt.Errorf("invalid variables: %w", err)
	}
	return nil
}

// CrossValidate runs Validate and then checks res.Query() a second time with
// graphql-go-tools against the rendered schema.
func CrossValidate(s *Schema, res *Result) error {
	if err := Validate(s, res); err != nil {
		return err
	}
	c, err := conformance.NewChecker(schema.Render(s))
	if err != nil {
		return err
	}
	if err := c.Check(res.Query()); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}
