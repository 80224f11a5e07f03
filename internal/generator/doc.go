// Package generator synthesizes a valid GraphQL operation for an arbitrary
// schema, deterministically from a seed.
//
// # Overview
//
// Generate performs one depth-bounded walk over the schema's type graph:
//
//  1. The root type for the configured operation kind is resolved and one of
//     its fields is chosen (the first one, or a seeded pick).
//  2. The selection set builder descends into composite result types. Leaf
//     fields are selected directly; composite fields recurse until MaxDepth.
//     A composite field past the bound is dropped, and a selection set left
//     empty falls back to __typename so the document stays valid. Unions
//     select __typename and an inline fragment on one seeded member.
//  3. For every selected field the argument binder declares variables:
//     each required argument (non-null without default) and at most one
//     optional argument chosen from the field's @listSize directive.
//  4. When placeholders are requested, the value synthesizer builds a
//     minimal witness for each variable.
//
// # Variables
//
// A variable is named Parent__field__argument after the type that declares
// the field, so the same field reached twice shares one variable. Variables
// are declared in the order the walk first binds them.
//
// # @listSize
//
// A field annotated with
//
//	@listSize(slicingArguments: ["first", "args.last"], requireOneSlicingArgument: true)
//
// exposes the first slicing path that resolves: its first segment must be an
// argument of the field and every further segment an input field of the
// previous segment's type. The whole argument becomes one variable; the rest
// of the path is forced into its value even when optional. Paths that do not
// resolve are skipped without error, and requireOneSlicingArgument: false
// exposes nothing. assumedSize and sizedFields are decoded but unused.
//
// # Placeholders
//
// Scalars take their value from Config.Placeholders (merged over
// DefaultPlaceholders); enums take their first value; input objects carry
// their required fields plus the forced path; lists hold one element. A
// custom scalar with no placeholder is null, except in a non-null position
// where the String placeholder is used.
//
// # Determinism
//
// Every choice goes through Rand, a SplitMix64 generator seeded from
// Config.Seed. Rand is consulted only for choices that shape the document, so
// requesting placeholders never changes the printed query.
package generator
