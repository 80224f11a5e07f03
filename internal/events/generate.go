package events

import "time"

// GenerateStart is emitted before a document is generated.
// Context carries the run ID.
type GenerateStart struct {
	Seed      int64
	Operation string
	RootType  string
}

// FieldVisited is emitted for every field added to the selection.
type FieldVisited struct {
	Path  string // dotted Parent.field steps from the root
	Type  string // declared result type
	Depth int
}

// VariableBound is emitted when a new variable is declared.
type VariableBound struct {
	Name     string
	Type     string
	Optional bool // bound through a @listSize slicing path
}

// GenerateFinish is emitted after generation completes or fails.
type GenerateFinish struct {
	Seed      int64
	Operation string
	RootField string
	Fields    int
	Variables int
	Err       error
	Duration  time.Duration
}
