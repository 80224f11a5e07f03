package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	events "github.com/yahelnachum/graphql-query-generator/internal/events"
	language "github.com/yahelnachum/graphql-query-generator/internal/language"
	runid "github.com/yahelnachum/graphql-query-generator/internal/runid"
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

// OperationName is the name of every generated operation.
const OperationName = "RandomQuery"

// RootFieldStrategy decides which root field the operation selects.
type RootFieldStrategy int

const (
	// FirstField selects the first declared root field.
	FirstField RootFieldStrategy = iota
	// RandomField selects a root field with the seeded generator.
	RandomField
)

func (s RootFieldStrategy) String() string {
	switch s {
	case FirstField:
		return "first"
	case RandomField:
		return "random"
	}
	return fmt.Sprintf("RootFieldStrategy(%d)", int(s))
}

const (
	DefaultMaxDepth      = 1
	DefaultMaxInputDepth = 16
)

type Config struct {
	Seed int64

	// ProvidePlaceholders fills Result.Variables with synthesized values.
	ProvidePlaceholders bool

	// Operation selects the root type. Zero means query.
	Operation language.Operation

	// MaxDepth bounds composite nesting below the root type. Values below 1
	// are raised to 1 so the root field can always carry a selection.
	MaxDepth int

	// MaxInputDepth bounds input object nesting while synthesizing values.
	MaxInputDepth int

	RootField RootFieldStrategy

	// Placeholders overrides or extends DefaultPlaceholders, keyed by scalar name.
	Placeholders map[string]any
}

func (c Config) withDefaults() Config {
	if c.Operation == "" {
		c.Operation = language.Query
	}
	if c.MaxDepth < 1 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxInputDepth < 1 {
		c.MaxInputDepth = DefaultMaxInputDepth
	}
	placeholders := DefaultPlaceholders()
	for k, v := range c.Placeholders {
		placeholders[k] = v
	}
	c.Placeholders = placeholders
	return c
}

// Result is one generated operation.
type Result struct {
	Document *language.QueryDocument
	// Variables is nil unless Config.ProvidePlaceholders was set.
	Variables map[string]any
	// Bindings lists the declared variables in declaration order.
	Bindings []*Variable
}

// Operation returns the generated operation definition.
func (r *Result) Operation() *language.OperationDefinition {
	return r.Document.Operations[0]
}

// Query prints the document.
func (r *Result) Query() string {
	return language.FormatQuery(r.Document)
}

// VariablesJSON encodes Variables; it yields "null" when none were requested.
func (r *Result) VariablesJSON() ([]byte, error) {
	return json.Marshal(r.Variables)
}

// Generate walks s from the configured root type and returns one valid
// operation. The output depends only on s and cfg; ctx is used for event
// correlation.
func Generate(ctx context.Context, s *schema.Schema, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	ctx, _ = runid.NewContext(ctx)
	started := time.Now()

	w := &walker{
		ctx:  ctx,
		acc:  accessor{schema: s},
		rnd:  NewRand(cfg.Seed),
		cfg:  cfg,
		vars: newVariableSet(),
	}
	rootName := ""
	if s != nil {
		if t := s.RootType(cfg.Operation); t != nil {
			rootName = t.Name
		}
	}
	eventbus.Publish(ctx, events.GenerateStart{Seed: cfg.Seed, Operation: string(cfg.Operation), RootType: rootName})

	res, rootField, err := w.assemble()

	eventbus.Publish(ctx, events.GenerateFinish{
		Seed:      cfg.Seed,
		Operation: string(cfg.Operation),
		RootField: rootField,
		Fields:    w.fields,
		Variables: len(w.vars.order),
		Err:       err,
		Duration:  time.Since(started),
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (w *walker) assemble() (*Result, string, error) {
	root, err := w.acc.rootType(w.cfg.Operation)
	if err != nil {
		return nil, "", err
	}
	fields := w.acc.fieldsOf(root)
	if len(fields) == 0 {
		return nil, "", fmt.Errorf("%w: %s", ErrEmptySchema, root.Name)
	}

	var chosen *schema.Field
	switch w.cfg.RootField {
	case RandomField:
		chosen = fields[w.rnd.Intn(len(fields))]
	default:
		chosen = fields[0]
	}

	sel, err := w.field(root, chosen, nil, 0)
	if err != nil {
		return nil, chosen.Name, err
	}

	op := &language.OperationDefinition{
		Operation:           w.cfg.Operation,
		Name:                OperationName,
		VariableDefinitions: w.vars.definitions(),
		SelectionSet:        language.SelectionSet{sel},
	}
	res := &Result{
		Document: &language.QueryDocument{Operations: language.OperationList{op}},
		Bindings: w.vars.order,
	}
	if w.cfg.ProvidePlaceholders {
		res.Variables = w.vars.values()
	}
	return res, chosen.Name, nil
}
