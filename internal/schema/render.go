package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Render produces SDL from the Schema.
// Deterministic ordering: type/directive names sorted lexicographically.
// Built-in scalars and directives are left to the loader's prelude.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	renderSchemaDefinition(&b, s)

	typeNames := make([]string, 0, len(s.Types))
	for name := range s.Types {
		if builtinScalars[name] || strings.HasPrefix(name, "__") {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		typ := s.Types[name]
		switch typ.Kind {
		case TypeKindScalar:
			renderScalar(&b, typ)
		case TypeKindEnum:
			renderEnum(&b, typ)
		case TypeKindInputObject:
			renderInputObject(&b, typ)
		case TypeKindObject:
			renderComposite(&b, "type", typ)
		case TypeKindInterface:
			renderComposite(&b, "interface", typ)
		case TypeKindUnion:
			renderUnion(&b, typ)
		}
	}

	directiveNames := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		if builtinDirectives[name] {
			continue
		}
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		renderDirective(&b, s.Directives[name])
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// ----- render helpers -----

// renderSchemaDefinition writes a schema block only when a root type has a
// non-conventional name.
func renderSchemaDefinition(b *strings.Builder, s *Schema) {
	roots := []struct{ op, name, conventional string }{
		{"query", s.QueryType, "Query"},
		{"mutation", s.MutationType, "Mutation"},
		{"subscription", s.SubscriptionType, "Subscription"},
	}
	custom := false
	for _, r := range roots {
		if r.name != "" && r.name != r.conventional {
			custom = true
		}
	}
	if !custom {
		return
	}
	b.WriteString("schema {\n")
	for _, r := range roots {
		if r.name == "" {
			continue
		}
		fmt.Fprintf(b, "  %s: %s\n", r.op, r.name)
	}
	b.WriteString("}\n\n")
}

func renderDescription(b *strings.Builder, indent, desc string) {
	if desc == "" {
		return
	}
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
	b.WriteString(indent)
	b.WriteString(strings.ReplaceAll(desc, `"""`, `\"""`))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
}

func renderDeprecated(b *strings.Builder, deprecated bool, reason string) {
	if !deprecated {
		return
	}
	b.WriteString(" @deprecated")
	if reason != "" {
		b.WriteString("(reason: ")
		b.WriteString(quote(reason))
		b.WriteString(")")
	}
}

func renderScalar(b *strings.Builder, typ *Type) {
	renderDescription(b, "", typ.Description)
	b.WriteString("scalar ")
	b.WriteString(typ.Name)
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, typ *Type) {
	renderDescription(b, "", typ.Description)
	b.WriteString("enum ")
	b.WriteString(typ.Name)
	b.WriteString(" {\n")
	for _, val := range typ.EnumValues {
		renderDescription(b, "  ", val.Description)
		b.WriteString("  ")
		b.WriteString(val.Name)
		renderDeprecated(b, val.IsDeprecated, val.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, typ *Type) {
	renderDescription(b, "", typ.Description)
	b.WriteString("input ")
	b.WriteString(typ.Name)
	if typ.OneOf {
		b.WriteString(" @oneOf")
	}
	b.WriteString(" {\n")
	for _, field := range typ.InputFields {
		renderDescription(b, "  ", field.Description)
		b.WriteString("  ")
		renderInputValue(b, field)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderComposite(b *strings.Builder, keyword string, typ *Type) {
	renderDescription(b, "", typ.Description)
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(typ.Name)
	if len(typ.Interfaces) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(typ.Interfaces, " & "))
	}
	b.WriteString(" {\n")
	for _, field := range typ.Fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func renderUnion(b *strings.Builder, typ *Type) {
	renderDescription(b, "", typ.Description)
	b.WriteString("union ")
	b.WriteString(typ.Name)
	b.WriteString(" = ")
	b.WriteString(strings.Join(typ.PossibleTypes, " | "))
	b.WriteString("\n\n")
}

func renderField(b *strings.Builder, field *Field) {
	renderDescription(b, "  ", field.Description)
	b.WriteString("  ")
	b.WriteString(field.Name)
	renderArguments(b, field.Arguments)
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	renderDeprecated(b, field.IsDeprecated, field.DeprecationReason)
	for _, d := range field.Directives {
		renderDirectiveApplication(b, d)
	}
	b.WriteString("\n")
}

func renderArguments(b *strings.Builder, args []*InputValue) {
	if len(args) == 0 {
		return
	}
	b.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		renderInputValue(b, arg)
	}
	b.WriteString(")")
}

func renderInputValue(b *strings.Builder, v *InputValue) {
	b.WriteString(v.Name)
	b.WriteString(": ")
	b.WriteString(v.Type.String())
	if v.DefaultValue != nil {
		b.WriteString(" = ")
		b.WriteString(renderValue(v.DefaultValue))
	}
	renderDeprecated(b, v.IsDeprecated, v.DeprecationReason)
}

func renderDirectiveApplication(b *strings.Builder, d *DirectiveApplication) {
	b.WriteString(" @")
	b.WriteString(d.Name)
	if len(d.Arguments) == 0 {
		return
	}
	b.WriteString("(")
	for i, arg := range d.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Name)
		b.WriteString(": ")
		b.WriteString(renderValue(arg.Value))
	}
	b.WriteString(")")
}

func renderDirective(b *strings.Builder, directive *Directive) {
	renderDescription(b, "", directive.Description)
	b.WriteString("directive @")
	b.WriteString(directive.Name)
	renderArguments(b, directive.Arguments)
	if directive.IsRepeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on ")
	b.WriteString(strings.Join(directive.Locations, " | "))
	b.WriteString("\n\n")
}

// renderValue renders a constant literal (default values, directive arguments).
func renderValue(v *Value) string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case ValueKindBoolean:
		return strconv.FormatBool(v.Boolean)
	case ValueKindInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueKindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case ValueKindString:
		return quote(v.Text)
	case ValueKindEnum:
		return v.Text
	case ValueKindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValueKindObject:
		parts := make([]string, len(v.Object))
		for i, f := range v.Object {
			parts[i] = f.Name + ": " + renderValue(f.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "null"
}

// quote writes s as a GraphQL string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
