package generator

import (
	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

// DefaultPlaceholders maps built-in scalars to the literal used for them.
func DefaultPlaceholders() map[string]any {
	return map[string]any{
		"Int":     10,
		"Float":   1.5,
		"String":  "placeholder",
		"ID":      "1",
		"Boolean": true,
	}
}

// synthesize builds a minimal value of ref: every required input field, plus
// the fields named by populate even when optional. Lists get one element.
func (w *walker) synthesize(ref *schema.TypeRef, populate []string, depth int) (any, error) {
	switch ref.Kind {
	case schema.TypeRefKindNonNull:
		v, err := w.synthesize(ref.OfType, populate, depth)
		if err != nil {
			return nil, err
		}
		if v == nil {
			// Custom scalar without a placeholder in a non-null position.
			v = w.cfg.Placeholders["String"]
		}
		return v, nil
	case schema.TypeRefKindList:
		v, err := w.synthesize(ref.OfType, populate, depth)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	t, err := w.acc.lookup(ref.Named)
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case schema.TypeKindScalar:
		return w.cfg.Placeholders[t.Name], nil
	case schema.TypeKindEnum:
		if len(t.EnumValues) == 0 {
			return nil, nil
		}
		return t.EnumValues[0].Name, nil
	case schema.TypeKindInputObject:
		return w.inputObject(t, populate, depth)
	}
	return nil, &SchemaError{Op: "synthesize", Type: t.Name, Err: errNotInputType}
}

func (w *walker) inputObject(t *schema.Type, populate []string, depth int) (map[string]any, error) {
	if depth >= w.cfg.MaxInputDepth {
		return nil, &SchemaError{Op: "synthesize", Type: t.Name, Err: ErrUnsatisfiableInput}
	}
	obj := make(map[string]any)
	for _, in := range w.acc.inputFieldsOf(t) {
		var rest []string
		switch {
		case len(populate) > 0 && populate[0] == in.Name:
			rest = populate[1:]
		case w.acc.isRequired(in):
		default:
			continue
		}
		v, err := w.synthesize(in.Type, rest, depth+1)
		if err != nil {
			return nil, err
		}
		obj[in.Name] = v
	}
	if t.OneOf && len(obj) == 0 && len(t.InputFields) > 0 {
		// @oneOf needs exactly one non-null member; take the first.
		first := t.InputFields[0]
		ref := first.Type
		if !ref.IsNonNull() {
			ref = schema.NonNullType(ref)
		}
		v, err := w.synthesize(ref, nil, depth+1)
		if err != nil {
			return nil, err
		}
		obj[first.Name] = v
	}
	return obj, nil
}
