package generator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/yahelnachum/graphql-query-generator/internal/generator"
	"github.com/yahelnachum/graphql-query-generator/internal/language"
	"github.com/yahelnachum/graphql-query-generator/internal/schema"
)

const itemTypes = `
type Item {
  id: ID!
  name: String
}
`

func mustGenerate(t *testing.T, sdl string, cfg generator.Config) *generator.Result {
	t.Helper()
	s, err := schema.BuildFromSDL(sdl)
	require.NoError(t, err, "failed to build schema")
	res, err := generator.Generate(context.Background(), s, cfg)
	require.NoError(t, err, "failed to generate")

	query := res.Query()
	doc, err := language.LoadQuery(s.Source(), query)
	require.NoError(t, err, "generated query is invalid:\n%s", query)
	if cfg.ProvidePlaceholders {
		_, err = language.CoerceVariables(s.Source(), doc.Operations[0], res.Variables)
		require.NoError(t, err, "placeholder values are invalid:\n%s", query)
	}
	return res
}

// declared returns "name: Type" for every variable definition, in order.
func declared(res *generator.Result) []string {
	var out []string
	for _, v := range res.Operation().VariableDefinitions {
		out = append(out, v.Variable+": "+v.Type.String())
	}
	return out
}

// callArgs returns "arg: $var" pairs of the root field's call site.
func callArgs(res *generator.Result) []string {
	var out []string
	root := res.Operation().SelectionSet[0].(*language.Field)
	for _, a := range root.Arguments {
		out = append(out, a.Name+": "+a.Value.String())
	}
	return out
}

func TestArgumentBinding(t *testing.T) {
	type testCase struct {
		name     string
		field    string
		extra    string
		declared []string
		call     []string
	}

	for _, tc := range []testCase{
		{
			name:     "no_directive_binds_required_only",
			field:    `items(first: Int, last: Int, id: ID!): [Item]`,
			declared: []string{"Query__items__id: ID!"},
			call:     []string{"id: $Query__items__id"},
		},
		{
			name:     "slicing_first",
			field:    `items(first: Int, last: Int): [Item] @listSize(slicingArguments: ["first"])`,
			declared: []string{"Query__items__first: Int"},
			call:     []string{"first: $Query__items__first"},
		},
		{
			name:     "slicing_last",
			field:    `items(first: Int, last: Int): [Item] @listSize(slicingArguments: ["last"])`,
			declared: []string{"Query__items__last: Int"},
			call:     []string{"last: $Query__items__last"},
		},
		{
			name:  "slicing_unknown_argument",
			field: `items(first: Int, last: Int): [Item] @listSize(slicingArguments: ["other"])`,
		},
		{
			name:  "slicing_not_required",
			field: `items(first: Int, last: Int): [Item] @listSize(slicingArguments: ["first"], requireOneSlicingArgument: false)`,
		},
		{
			name:     "first_resolvable_path_wins",
			field:    `items(first: Int, last: Int): [Item] @listSize(slicingArguments: ["missing", "last", "first"])`,
			declared: []string{"Query__items__last: Int"},
			call:     []string{"last: $Query__items__last"},
		},
		{
			name:     "required_and_slicing_in_declared_order",
			field:    `items(first: Int, filter: String!): [Item] @listSize(slicingArguments: ["first"])`,
			declared: []string{"Query__items__first: Int", "Query__items__filter: String!"},
			call:     []string{"first: $Query__items__first", "filter: $Query__items__filter"},
		},
		{
			name:     "required_with_default_is_optional",
			field:    `items(first: Int! = 5, id: ID!): [Item]`,
			declared: []string{"Query__items__id: ID!"},
			call:     []string{"id: $Query__items__id"},
		},
		{
			name:     "nested_slicing_path",
			field:    `items(args: Args): [Item] @listSize(slicingArguments: ["args.first", "args.last"])`,
			extra:    "input Args { first: Int last: Int }",
			declared: []string{"Query__items__args: Args"},
			call:     []string{"args: $Query__items__args"},
		},
		{
			name:  "nested_slicing_path_unresolved",
			field: `items(args: Args): [Item] @listSize(slicingArguments: ["args.size"])`,
			extra: "input Args { first: Int last: Int }",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sdl := "type Query {\n  " + tc.field + "\n}\n" + itemTypes + tc.extra
			res := mustGenerate(t, sdl, generator.Config{Seed: 1})
			if diff := cmp.Diff(tc.declared, declared(res)); diff != "" {
				t.Errorf("declared variables mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.call, callArgs(res)); diff != "" {
				t.Errorf("call site mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceholderValues(t *testing.T) {
	type testCase struct {
		name   string
		sdl    string
		config generator.Config
		want   map[string]any
	}

	for _, tc := range []testCase{
		{
			name: "nested_path_populates_only_selected_field",
			sdl: `
type Query { items(args: Args): [Item] @listSize(slicingArguments: ["args.first", "args.last"]) }
input Args { first: Int last: Int }
` + itemTypes,
			want: map[string]any{
				"Query__items__args": map[string]any{"first": 10},
			},
		},
		{
			name: "required_argument_carries_slicing_path",
			sdl: `
type Query { items(args: Args!): [Item] @listSize(slicingArguments: ["args.first"]) }
input Args { first: Int last: Int id: ID! }
` + itemTypes,
			want: map[string]any{
				"Query__items__args": map[string]any{"first": 10, "id": "1"},
			},
		},
		{
			name: "required_input_recurses_every_level",
			sdl: `
type Query { items(args: Args!): [Item] }
input Args { first: Int! after: String complex: MoreArgs! }
input MoreArgs { last: Int! before: String }
` + itemTypes,
			want: map[string]any{
				"Query__items__args": map[string]any{
					"first":   10,
					"complex": map[string]any{"last": 10},
				},
			},
		},
		{
			name: "list_wrapped_path_segment",
			sdl: `
type Query { items(pages: [Page!]): [Item] @listSize(slicingArguments: ["pages.size"]) }
input Page { size: Int cursor: String }
` + itemTypes,
			want: map[string]any{
				"Query__items__pages": []any{map[string]any{"size": 10}},
			},
		},
		{
			name: "enum_and_builtin_scalars",
			sdl: `
type Query { items(order: Order!, flag: Boolean!, ratio: Float!, key: ID!, tags: [String!]!): [Item] }
enum Order { ASC DESC }
` + itemTypes,
			want: map[string]any{
				"Query__items__order": "ASC",
				"Query__items__flag":  true,
				"Query__items__ratio": 1.5,
				"Query__items__key":   "1",
				"Query__items__tags":  []any{"placeholder"},
			},
		},
		{
			name: "custom_scalar_defaults",
			sdl: `
type Query { items(since: DateTime, until: DateTime!): [Item] @listSize(slicingArguments: ["since"]) }
scalar DateTime
` + itemTypes,
			want: map[string]any{
				"Query__items__since": nil,
				"Query__items__until": "placeholder",
			},
		},
		{
			name: "custom_scalar_override",
			sdl: `
type Query { items(until: DateTime!, first: Int!): [Item] }
scalar DateTime
` + itemTypes,
			config: generator.Config{Placeholders: map[string]any{"DateTime": "2024-01-01T00:00:00Z", "Int": 3}},
			want: map[string]any{
				"Query__items__until": "2024-01-01T00:00:00Z",
				"Query__items__first": 3,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.config
			cfg.ProvidePlaceholders = true
			res := mustGenerate(t, tc.sdl, cfg)
			if diff := cmp.Diff(tc.want, res.Variables); diff != "" {
				t.Errorf("variables mismatch (-want +got):\n%s", diff)
			}
			for _, b := range res.Bindings {
				require.True(t, b.HasValue, "binding %s has no value", b.Name)
			}
		})
	}
}

func TestOneOfInputTakesFirstMember(t *testing.T) {
	s := schema.NewSchema("").
		SetQueryType("Query").
		AddType(schema.NewType("ID", schema.TypeKindScalar, "")).
		AddType(schema.NewType("String", schema.TypeKindScalar, "")).
		AddType(schema.NewType("ItemBy", schema.TypeKindInputObject, "").
			SetOneOf(true).
			AddInputField(schema.NewInputValue("id", "", schema.NamedType("ID"))).
			AddInputField(schema.NewInputValue("name", "", schema.NamedType("String")))).
		AddType(schema.NewType("Query", schema.TypeKindObject, "").
			AddField(schema.NewField("item", "", schema.NamedType("String")).
				AddArgument(schema.NewInputValue("by", "", schema.NonNullType(schema.NamedType("ItemBy"))))))

	res, err := generator.Generate(context.Background(), s, generator.Config{ProvidePlaceholders: true})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"Query__item__by": map[string]any{"id": "1"}}, res.Variables)
	require.Contains(t, res.Query(), "$Query__item__by: ItemBy!")
}

func TestPlaceholdersDoNotChangeQuery(t *testing.T) {
	sdl := `
type Query {
  a(first: Int): [Item] @listSize(slicingArguments: ["first"])
  b(id: ID!): Item
}
` + itemTypes
	for seed := int64(0); seed < 8; seed++ {
		without := mustGenerate(t, sdl, generator.Config{Seed: seed, RootField: generator.RandomField})
		with := mustGenerate(t, sdl, generator.Config{Seed: seed, RootField: generator.RandomField, ProvidePlaceholders: true})
		require.Equal(t, without.Query(), with.Query())
		require.Nil(t, without.Variables)
		for _, b := range without.Bindings {
			require.False(t, b.HasValue)
		}
	}
}

func TestDeterminism(t *testing.T) {
	sdl := `
type Query {
  search(term: String!): [SearchResult!]!
  items(first: Int, after: String): [Item] @listSize(slicingArguments: ["first"])
  node(id: ID!): Node
}
union SearchResult = Item | Node
interface Named { name: String }
type Node implements Named { id: ID! name: String items(first: Int!): [Item] }
` + itemTypes
	for seed := int64(0); seed < 16; seed++ {
		cfg := generator.Config{Seed: seed, RootField: generator.RandomField, ProvidePlaceholders: true, MaxDepth: 3}
		first := mustGenerate(t, sdl, cfg)
		second := mustGenerate(t, sdl, cfg)
		if diff := cmp.Diff(first.Query(), second.Query()); diff != "" {
			t.Fatalf("seed %d: query differs between runs (-first +second):\n%s", seed, diff)
		}
		if diff := cmp.Diff(first.Variables, second.Variables); diff != "" {
			t.Fatalf("seed %d: variables differ between runs (-first +second):\n%s", seed, diff)
		}
		a, err := first.VariablesJSON()
		require.NoError(t, err)
		b, err := second.VariablesJSON()
		require.NoError(t, err)
		require.JSONEq(t, string(a), string(b))
	}
}

func TestRandomRootFieldCoversFields(t *testing.T) {
	sdl := `
type Query {
  a: String
  b: Int
  c: Boolean
}
`
	seen := map[string]bool{}
	for seed := int64(0); seed < 64; seed++ {
		res := mustGenerate(t, sdl, generator.Config{Seed: seed, RootField: generator.RandomField})
		seen[res.Operation().SelectionSet[0].(*language.Field).Name] = true
	}
	require.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)
}

func TestFirstFieldStrategy(t *testing.T) {
	sdl := `
type Query {
  first: String
  second: Int
}
`
	for seed := int64(0); seed < 4; seed++ {
		res := mustGenerate(t, sdl, generator.Config{Seed: seed})
		require.Equal(t, "first", res.Operation().SelectionSet[0].(*language.Field).Name)
		require.Equal(t, generator.OperationName, res.Operation().Name)
		require.Equal(t, language.Query, res.Operation().Operation)
	}
}

func TestCyclicSchemaTerminates(t *testing.T) {
	sdl := `
type Query { node(id: ID!): Node }
type Node {
  id: ID!
  parent: Node
  children(first: Int!): [Node!]!
}
`
	shallow := mustGenerate(t, sdl, generator.Config{})
	root := shallow.Operation().SelectionSet[0].(*language.Field)
	require.Len(t, root.SelectionSet, 1, "composite fields past the depth bound are dropped")
	require.Equal(t, "id", root.SelectionSet[0].(*language.Field).Name)
	require.Equal(t, []string{"Query__node__id: ID!"}, declared(shallow))

	deep := mustGenerate(t, sdl, generator.Config{MaxDepth: 4, ProvidePlaceholders: true})
	require.Equal(t, []string{"Query__node__id: ID!", "Node__children__first: Int!"}, declared(deep),
		"variables are shared across every place the field is reached")
	require.Equal(t, 10, deep.Variables["Node__children__first"])
}

func TestTypenameFallback(t *testing.T) {
	sdl := `
type Query { wrapper: Wrapper }
type Wrapper { inner: Inner }
type Inner { value: String }
`
	res := mustGenerate(t, sdl, generator.Config{})
	root := res.Operation().SelectionSet[0].(*language.Field)
	require.Len(t, root.SelectionSet, 1)
	require.Equal(t, "__typename", root.SelectionSet[0].(*language.Field).Name)
}

func TestUnionSelectsInlineFragment(t *testing.T) {
	sdl := `
type Query { search(term: String!): [SearchResult!]! }
union SearchResult = Item | Other
type Other { code: Int! }
` + itemTypes
	members := map[string]bool{}
	for seed := int64(0); seed < 32; seed++ {
		res := mustGenerate(t, sdl, generator.Config{Seed: seed})
		root := res.Operation().SelectionSet[0].(*language.Field)
		require.Len(t, root.SelectionSet, 2)
		frag, ok := root.SelectionSet[1].(*language.InlineFragment)
		require.True(t, ok, "expected an inline fragment")
		members[frag.TypeCondition] = true
	}
	require.Equal(t, map[string]bool{"Item": true, "Other": true}, members)
}

func TestInterfaceFieldsUseInterfaceName(t *testing.T) {
	sdl := `
type Query { named: [Named] }
interface Named { name(locale: String!): String }
type Person implements Named { name(locale: String!): String age: Int }
`
	res := mustGenerate(t, sdl, generator.Config{})
	require.Equal(t, []string{"Named__name__locale: String!"}, declared(res))
}

func TestMutationOperation(t *testing.T) {
	sdl := `
type Query { ping: String }
type Mutation { createItem(input: CreateItem!): Item }
input CreateItem { name: String! note: String }
` + itemTypes
	res := mustGenerate(t, sdl, generator.Config{Operation: language.Mutation, ProvidePlaceholders: true})
	require.Equal(t, language.Mutation, res.Operation().Operation)
	require.Equal(t, []string{"Mutation__createItem__input: CreateItem!"}, declared(res))
	require.Equal(t, map[string]any{"name": "placeholder"}, res.Variables["Mutation__createItem__input"])
}

func TestSchemaErrors(t *testing.T) {
	t.Run("rootless", func(t *testing.T) {
		s := schema.NewSchema("").AddType(schema.NewType("String", schema.TypeKindScalar, ""))
		_, err := generator.Generate(context.Background(), s, generator.Config{})
		require.ErrorIs(t, err, generator.ErrSchema)
		var se *generator.SchemaError
		require.True(t, errors.As(err, &se))
		require.Equal(t, "root type", se.Op)
	})

	t.Run("missing_mutation_root", func(t *testing.T) {
		s, err := schema.BuildFromSDL("type Query { ping: String }")
		require.NoError(t, err)
		_, err = generator.Generate(context.Background(), s, generator.Config{Operation: language.Mutation})
		require.ErrorIs(t, err, generator.ErrSchema)
	})

	t.Run("empty_root", func(t *testing.T) {
		s := schema.NewSchema("").
			SetQueryType("Query").
			AddType(schema.NewType("Query", schema.TypeKindObject, ""))
		_, err := generator.Generate(context.Background(), s, generator.Config{})
		require.ErrorIs(t, err, generator.ErrEmptySchema)
		require.NotErrorIs(t, err, generator.ErrSchema)
	})

	t.Run("undefined_type", func(t *testing.T) {
		s := schema.NewSchema("").
			SetQueryType("Query").
			AddType(schema.NewType("Query", schema.TypeKindObject, "").
				AddField(schema.NewField("ghost", "", schema.NamedType("Ghost"))))
		_, err := generator.Generate(context.Background(), s, generator.Config{})
		require.ErrorIs(t, err, generator.ErrSchema)
		require.Contains(t, err.Error(), "Ghost")
	})

	t.Run("unbounded_required_input", func(t *testing.T) {
		s := schema.NewSchema("").
			SetQueryType("Query").
			AddType(schema.NewType("Int", schema.TypeKindScalar, "")).
			AddType(schema.NewType("Loop", schema.TypeKindInputObject, "").
				AddInputField(schema.NewInputValue("next", "", schema.NonNullType(schema.NamedType("Loop"))))).
			AddType(schema.NewType("Query", schema.TypeKindObject, "").
				AddField(schema.NewField("loop", "", schema.NamedType("Int")).
					AddArgument(schema.NewInputValue("in", "", schema.NonNullType(schema.NamedType("Loop"))))))
		_, err := generator.Generate(context.Background(), s, generator.Config{ProvidePlaceholders: true, MaxInputDepth: 4})
		require.ErrorIs(t, err, generator.ErrUnsatisfiableInput)
		require.ErrorIs(t, err, generator.ErrSchema)

		// Without placeholders no value is synthesized, so the cycle is harmless.
		res, err := generator.Generate(context.Background(), s, generator.Config{})
		require.NoError(t, err)
		require.Len(t, res.Bindings, 1)
	})
}

func TestQuerySnapshot(t *testing.T) {
	sdl := mustReadFile(t, "testdata/kitchen_sink.graphql")
	res := mustGenerate(t, sdl, generator.Config{Seed: 42, MaxDepth: 3, ProvidePlaceholders: true, RootField: generator.RandomField})
	vars, err := res.VariablesJSON()
	require.NoError(t, err)
	actual := res.Query() + "\n# variables\n" + string(vars) + "\n"

	snapshotPath := filepath.Join("testdata", "kitchen_sink_seed42.snapshot")

	// If snapshot doesn't exist, create it
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		err := os.WriteFile(snapshotPath, []byte(actual), 0644)
		require.NoError(t, err, "failed to write snapshot file")
		t.Logf("Created snapshot file: %s", snapshotPath)
		return
	}

	expected, err := os.ReadFile(snapshotPath)
	require.NoError(t, err, "failed to read snapshot file")
	if diff := cmp.Diff(string(expected), actual); diff != "" {
		t.Errorf("query snapshot mismatch (-want +got):\n%s", diff)
	}
	require.True(t, strings.Contains(actual, generator.OperationName))
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)
	return string(content)
}
