// Package validation provides the field precondition checker used by every
// mutating domain operation.
package validation

import (
	"strings"

	"vinyls/internal/models"
)

// Kind is the expected primitive kind of a field value.
type Kind string

// String is the only kind the domain currently validates.
const String Kind = "string"

// Field describes one input precondition: a named value, its expected kind,
// and whether it may be absent.
type Field struct {
	Name     string
	Value    any
	Kind     Kind
	Optional bool
}

// Fields checks the given descriptors in order and returns the error of the
// first failing one; nil means all passed. Absent values (untyped nil or a
// nil *string) are skipped when Optional, otherwise they fail as a type
// error. Present values must match Kind, and textual values must not be
// blank after trimming. Fields performs no I/O.
func Fields(fields ...Field) error {
	for _, f := range fields {
		value, present := deref(f.Value)
		if !present {
			if f.Optional {
				continue
			}
			return models.NewTypeError(nil, string(f.Kind))
		}

		s, ok := value.(string)
		if !ok {
			return models.NewTypeError(value, string(f.Kind))
		}

		if strings.TrimSpace(s) == "" {
			return models.NewValueError(f.Name + " is empty or blank")
		}
	}
	return nil
}

// deref unwraps *string values and reports whether a value is present.
func deref(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case *string:
		if val == nil {
			return nil, false
		}
		return *val, true
	default:
		return v, true
	}
}
