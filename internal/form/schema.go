// Package form binds a per-panel validation schema to string-typed input
// state. Defaults live in the schema and are applied in exactly one place
// (Reset), not scattered across render call sites.
package form

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Values holds raw input state, field name to string value. Inputs are
// strings even for numeric fields; coercion happens at validation time.
type Values map[string]string

// Field is one schema entry. Zero values mean "constraint not set".
type Field struct {
	Name     string
	Label    string
	Required bool

	MinLen int
	MaxLen int

	// Numeric fields are coerced from string before range checks. Empty
	// input is "absent", never NaN or 0, so an optional numeric field does
	// not fail its range check just for being blank.
	Numeric bool
	Min     *float64
	Max     *float64

	Pattern    *regexp.Regexp
	PatternMsg string

	// RequiredWhen makes the field conditionally required, e.g. an offer end
	// date that only matters while the limited-time flag is set.
	RequiredWhen func(v Values) bool

	// Default seeds the field on Reset when no explicit value is given.
	Default string

	// Enum restricts the value to a fixed set (when non-empty).
	Enum []string
}

func (f Field) label() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.Name
}

type Schema struct {
	fields []Field
	byName map[string]int
}

func NewSchema(fields ...Field) Schema {
	s := Schema{fields: fields, byName: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.byName[f.Name] = i
	}
	return s
}

func (s Schema) Fields() []Field { return s.fields }

func (s Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Defaults returns a fresh value map with every field present, filled from
// schema defaults. No field is ever absent/undefined.
func (s Schema) Defaults() Values {
	v := make(Values, len(s.fields))
	for _, f := range s.fields {
		v[f.Name] = f.Default
	}
	return v
}

// FloatPtr is a convenience for Min/Max bounds.
func FloatPtr(f float64) *float64 { return &f }

// ValidationError aggregates per-field messages. It satisfies errors.As for
// the mutation layer's taxonomy: it never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", n, e.Fields[n]))
	}
	return strings.Join(parts, "; ")
}
