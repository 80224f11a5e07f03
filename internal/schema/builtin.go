package schema

// builtinScalars are provided by the loader's prelude and never rendered.
var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

var builtinDirectives = map[string]bool{
	"include":     true,
	"skip":        true,
	"deprecated":  true,
	"specifiedBy": true,
	"oneOf":       true,
	"defer":       true,
}

var builtinScalarDescriptions = []struct{ name, description string }{
	{"String", "The `String` scalar type represents textual data, represented as UTF-8 character sequences."},
	{"Int", "The `Int` scalar type represents non-fractional signed whole numeric values."},
	{"Float", "The `Float` scalar type represents signed double-precision fractional values."},
	{"Boolean", "The `Boolean` scalar type represents `true` or `false`."},
	{"ID", "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching."},
}

// AddBuiltinScalars adds the five specified scalars to a hand-assembled schema.
func (s *Schema) AddBuiltinScalars() *Schema {
	for _, b := range builtinScalarDescriptions {
		s.AddType(NewType(b.name, TypeKindScalar, b.description))
	}
	return s
}
