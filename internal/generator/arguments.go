package generator

import (
	"context"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	events "github.com/yahelnachum/graphql-query-generator/internal/events"
	language "github.com/yahelnachum/graphql-query-generator/internal/language"
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

// Variable is one declared operation variable.
type Variable struct {
	Name     string
	Type     *language.Type
	Value    any
	HasValue bool
}

// variableSet accumulates variables in first-seen order, unique by name.
type variableSet struct {
	order  []*Variable
	byName map[string]*Variable
}

func newVariableSet() *variableSet {
	return &variableSet{byName: make(map[string]*Variable)}
}

func (s *variableSet) get(name string) *Variable { return s.byName[name] }

func (s *variableSet) add(v *Variable) {
	s.order = append(s.order, v)
	s.byName[v.Name] = v
}

func (s *variableSet) definitions() language.VariableDefinitionList {
	defs := make(language.VariableDefinitionList, 0, len(s.order))
	for _, v := range s.order {
		defs = append(defs, &language.VariableDefinition{Variable: v.Name, Type: v.Type})
	}
	return defs
}

func (s *variableSet) values() map[string]any {
	vals := make(map[string]any, len(s.order))
	for _, v := range s.order {
		vals[v.Name] = v.Value
	}
	return vals
}

// VariableName derives the variable bound to argument arg of parent.field.
func VariableName(parent, field, arg string) string {
	return parent + "__" + field + "__" + arg
}

// bindArguments binds every required argument of f and at most one optional
// argument picked by the field's @listSize policy. The rest of the selected
// path is populated whether the argument it starts at is required or not.
func (w *walker) bindArguments(parent *schema.Type, f *schema.Field) (language.ArgumentList, error) {
	policy := w.acc.slicingPolicy(f)
	var args language.ArgumentList
	for _, arg := range w.acc.argumentsOf(f) {
		populate, selected := policy.Selects(arg.Name)
		required := w.acc.isRequired(arg)
		if !required && !selected {
			continue
		}
		optional := !required
		name := VariableName(parent.Name, f.Name, arg.Name)
		if err := w.declare(name, arg, populate, optional); err != nil {
			return nil, err
		}
		args = append(args, &language.Argument{
			Name:  arg.Name,
			Value: &language.Value{Kind: language.Variable, Raw: name},
		})
	}
	return args, nil
}

func (w *walker) declare(name string, arg *schema.InputValue, populate []string, optional bool) error {
	if w.vars.get(name) != nil {
		return nil
	}
	v := &Variable{Name: name, Type: arg.Type.ASTType()}
	if w.cfg.ProvidePlaceholders {
		val, err := w.synthesize(arg.Type, populate, 0)
		if err != nil {
			return err
		}
		v.Value, v.HasValue = val, true
	}
	w.vars.add(v)
	publishVariable(w.ctx, v, optional)
	return nil
}

func publishVariable(ctx context.Context, v *Variable, optional bool) {
	eventbus.Publish(ctx, events.VariableBound{Name: v.Name, Type: v.Type.String(), Optional: optional})
}
