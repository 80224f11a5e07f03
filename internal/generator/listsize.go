package generator

import (
	"strings"

	schema "github.com/yahelnachum/graphql-query-generator/internal/schema"
)

const listSizeDirective = schema.ListSizeDirective

// ListSize is the decoded form of a @listSize application.
// AssumedSize and SizedFields are carried for callers; generation ignores them.
type ListSize struct {
	AssumedSize               *int64
	SlicingArguments          []string
	SizedFields               []string
	RequireOneSlicingArgument bool
}

// SlicingPolicy names the one optional argument path to expose on a field.
// A nil SelectedPath selects nothing.
type SlicingPolicy struct {
	SelectedPath []string
}

// Selects reports whether the policy starts at arg and returns the remaining
// input field segments.
func (p SlicingPolicy) Selects(arg string) ([]string, bool) {
	if len(p.SelectedPath) == 0 || p.SelectedPath[0] != arg {
		return nil, false
	}
	return p.SelectedPath[1:], true
}

// decodeListSize reads the field's @listSize application. ok is false when the
// field carries none or when requireOneSlicingArgument is not a Boolean.
func (a accessor) decodeListSize(f *schema.Field) (ListSize, bool) {
	var app *schema.DirectiveApplication
	for _, d := range a.directivesOf(f) {
		if d.Name == listSizeDirective {
			app = d
			break
		}
	}
	if app == nil {
		return ListSize{}, false
	}

	ls := ListSize{RequireOneSlicingArgument: a.defaultRequireOne()}
	if v := app.Argument("requireOneSlicingArgument"); v != nil {
		b, ok := v.AsBool()
		if !ok {
			return ListSize{}, false
		}
		ls.RequireOneSlicingArgument = b
	}
	if v := app.Argument("slicingArguments"); v != nil {
		ls.SlicingArguments, _ = v.AsStringList()
	}
	if v := app.Argument("sizedFields"); v != nil {
		ls.SizedFields, _ = v.AsStringList()
	}
	if v := app.Argument("assumedSize"); v != nil {
		if n, ok := v.AsInt(); ok {
			ls.AssumedSize = &n
		}
	}
	return ls, true
}

// defaultRequireOne honours a Boolean default declared on the directive
// definition and falls back to true.
func (a accessor) defaultRequireOne() bool {
	def := a.directiveDefinition(listSizeDirective)
	if def == nil {
		return true
	}
	arg := def.Argument("requireOneSlicingArgument")
	if arg == nil {
		return true
	}
	if b, ok := arg.DefaultValue.AsBool(); ok {
		return b
	}
	return true
}

func (a accessor) slicingPolicy(f *schema.Field) SlicingPolicy {
	ls, ok := a.decodeListSize(f)
	if !ok || !ls.RequireOneSlicingArgument {
		return SlicingPolicy{}
	}
	for _, p := range ls.SlicingArguments {
		segments := strings.Split(p, ".")
		if a.resolves(f, segments) {
			return SlicingPolicy{SelectedPath: segments}
		}
	}
	return SlicingPolicy{}
}

// resolves checks that segments name an argument of f followed by a chain of
// input fields. List wrappers along the chain are looked through.
func (a accessor) resolves(f *schema.Field, segments []string) bool {
	if len(segments) == 0 || segments[0] == "" {
		return false
	}
	var ref *schema.TypeRef
	for _, arg := range a.argumentsOf(f) {
		if arg.Name == segments[0] {
			ref = arg.Type
			break
		}
	}
	if ref == nil {
		return false
	}
	for _, seg := range segments[1:] {
		t, err := a.namedType(ref)
		if err != nil || t.Kind != schema.TypeKindInputObject {
			return false
		}
		in := t.InputField(seg)
		if in == nil {
			return false
		}
		ref = in.Type
	}
	return true
}
