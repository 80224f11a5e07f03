package generator

import (
	"context"
	"strings"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	events "github.com/yahelnachum/graphql-query-generator/internal/events"
	language "github.com/yahelnachum/graphql-query-generator/internal/language"
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

const typenameField = "__typename"

// step is one (parent type, field) hop of a selection path.
type step struct {
	Parent string
	Field  string
}

func pathString(path []step) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = s.Parent + "." + s.Field
	}
	return strings.Join(parts, "/")
}

// walker holds the per-call state of one generation run.
type walker struct {
	ctx    context.Context
	acc    accessor
	rnd    *Rand
	cfg    Config
	vars   *variableSet
	fields int
}

// selectionSet builds the sub-selection of composite type t. depth counts the
// composite levels below the root operation type.
func (w *walker) selectionSet(t *schema.Type, path []step, depth int) (language.SelectionSet, error) {
	if t.Kind == schema.TypeKindUnion {
		return w.unionSelection(t, path, depth)
	}
	var set language.SelectionSet
	for _, f := range w.acc.fieldsOf(t) {
		sel, err := w.field(t, f, path, depth)
		if err != nil {
			return nil, err
		}
		if sel != nil {
			set = append(set, sel)
		}
	}
	if len(set) == 0 {
		set = append(set, typename())
	}
	return set, nil
}

// unionSelection selects __typename plus one member chosen by the seed.
func (w *walker) unionSelection(t *schema.Type, path []step, depth int) (language.SelectionSet, error) {
	set := language.SelectionSet{typename()}
	if len(t.PossibleTypes) == 0 {
		return set, nil
	}
	member, err := w.acc.lookup(t.PossibleTypes[w.rnd.Intn(len(t.PossibleTypes))])
	if err != nil {
		return nil, err
	}
	sub, err := w.selectionSet(member, path, depth)
	if err != nil {
		return nil, err
	}
	return append(set, &language.InlineFragment{
		TypeCondition: member.Name,
		SelectionSet:  sub,
	}), nil
}

// field renders one field of parent. It returns nil when the field's
// composite result would exceed MaxDepth.
func (w *walker) field(parent *schema.Type, f *schema.Field, path []step, depth int) (*language.Field, error) {
	t, err := w.acc.namedType(f.Type)
	if err != nil {
		return nil, err
	}
	if t.IsComposite() && depth+1 > w.cfg.MaxDepth {
		return nil, nil
	}

	path = append(path[:len(path):len(path)], step{Parent: parent.Name, Field: f.Name})
	args, err := w.bindArguments(parent, f)
	if err != nil {
		return nil, err
	}
	w.fields++
	eventbus.Publish(w.ctx, events.FieldVisited{Path: pathString(path), Type: f.Type.String(), Depth: depth})

	out := &language.Field{Alias: f.Name, Name: f.Name, Arguments: args}
	if t.IsComposite() {
		out.SelectionSet, err = w.selectionSet(t, path, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func typename() *language.Field {
	return &language.Field{Alias: typenameField, Name: typenameField}
}
