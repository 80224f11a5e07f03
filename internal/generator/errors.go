package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema matches every *SchemaError.
	ErrSchema = errors.New("schema error")
	// ErrEmptySchema is returned when the root type exposes no selectable fields.
	ErrEmptySchema = errors.New("root type exposes no fields")
	// ErrUnsatisfiableInput is returned when required input fields nest past MaxInputDepth.
	ErrUnsatisfiableInput = errors.New("required input fields nest without bound")

	errNotInputType = errors.New("not an input type")
)

// SchemaError reports a malformed or rootless schema. It aborts generation.
type SchemaError struct {
	Op   string
	Type string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Type, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
