package schema

import (
	"strconv"

	language "github.com/yahelnachum/graphql-query-generator/internal/language"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	ValueKindNull    ValueKind = "NULL"
	ValueKindBoolean ValueKind = "BOOLEAN"
	ValueKindInt     ValueKind = "INT"
	ValueKindFloat   ValueKind = "FLOAT"
	ValueKindString  ValueKind = "STRING"
	ValueKindEnum    ValueKind = "ENUM"
	ValueKindList    ValueKind = "LIST"
	ValueKindObject  ValueKind = "OBJECT"
)

// Value is a constant literal taken from SDL: a directive argument or a default.
// Only the member matching Kind is meaningful.
type Value struct {
	Kind    ValueKind
	Boolean bool
	Int     int64
	Float   float64
	Text    string // STRING and ENUM
	List    []*Value
	Object  []*ObjectField
}

type ObjectField struct {
	Name  string
	Value *Value
}

func BooleanValue(b bool) *Value    { return &Value{Kind: ValueKindBoolean, Boolean: b} }
func IntValue(i int64) *Value       { return &Value{Kind: ValueKindInt, Int: i} }
func StringValue(s string) *Value   { return &Value{Kind: ValueKindString, Text: s} }
func ListValue(vs ...*Value) *Value { return &Value{Kind: ValueKindList, List: vs} }

// AsBool returns the boolean held by v, if v is a BOOLEAN.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.Kind != ValueKindBoolean {
		return false, false
	}
	return v.Boolean, true
}

// AsInt returns the integer held by v, if v is an INT.
func (v *Value) AsInt() (int64, bool) {
	if v == nil || v.Kind != ValueKindInt {
		return 0, false
	}
	return v.Int, true
}

// AsString returns the text held by v, if v is a STRING.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != ValueKindString {
		return "", false
	}
	return v.Text, true
}

// AsStringList returns the string items of a LIST, skipping items of any
// other kind. A bare STRING is coerced to a one-item list, as input coercion does.
func (v *Value) AsStringList() ([]string, bool) {
	if v == nil {
		return nil, false
	}
	switch v.Kind {
	case ValueKindString:
		return []string{v.Text}, true
	case ValueKindList:
		out := make([]string, 0, len(v.List))
		for _, item := range v.List {
			if s, ok := item.AsString(); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// ValueFromAST converts a toolkit literal. Variables are not constants and
// become NULL.
func ValueFromAST(node *language.Value) *Value { return buildValue(node) }

func buildValue(node *language.Value) *Value {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case language.IntValue:
		i, err := strconv.ParseInt(node.Raw, 10, 64)
		if err != nil {
			// Out of int64 range; keep the magnitude as a float.
			f, _ := strconv.ParseFloat(node.Raw, 64)
			return &Value{Kind: ValueKindFloat, Float: f}
		}
		return &Value{Kind: ValueKindInt, Int: i}
	case language.FloatValue:
		f, _ := strconv.ParseFloat(node.Raw, 64)
		return &Value{Kind: ValueKindFloat, Float: f}
	case language.StringValue, language.BlockValue:
		return &Value{Kind: ValueKindString, Text: node.Raw}
	case language.BooleanValue:
		return &Value{Kind: ValueKindBoolean, Boolean: node.Raw == "true"}
	case language.EnumValue:
		return &Value{Kind: ValueKindEnum, Text: node.Raw}
	case language.ListValue:
		v := &Value{Kind: ValueKindList}
		for _, child := range node.Children {
			v.List = append(v.List, buildValue(child.Value))
		}
		return v
	case language.ObjectValue:
		v := &Value{Kind: ValueKindObject}
		for _, child := range node.Children {
			v.Object = append(v.Object, &ObjectField{Name: child.Name, Value: buildValue(child.Value)})
		}
		return v
	}
	return &Value{Kind: ValueKindNull}
}
