package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Form owns the live input state for one dialog. It is created closed over a
// schema, destroyed with the dialog, and re-seeded via Reset when editing
// begins.
type Form struct {
	schema     Schema
	values     Values
	errors     map[string]string
	submitting bool
}

func New(schema Schema) *Form {
	return &Form{
		schema: schema,
		values: schema.Defaults(),
		errors: map[string]string{},
	}
}

// SetField updates one field and clears its error. Unknown fields are
// dropped: only schema fields may hold state, so nothing can leak past Reset.
func (f *Form) SetField(name, value string) {
	if !f.schema.Has(name) {
		return
	}
	f.values[name] = value
	delete(f.errors, name)
}

func (f *Form) Value(name string) string { return f.values[name] }

// Number coerces a field to float64. ok is false when the field is blank
// (absent) or not parseable.
func (f *Form) Number(name string) (float64, bool) {
	raw := strings.TrimSpace(f.values[name])
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Int is Number truncated; blank is absent.
func (f *Form) Int(name string) (int64, bool) {
	n, ok := f.Number(name)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

func (f *Form) Bool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(f.values[name])) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

// Values returns a copy; callers cannot mutate form state around SetField.
func (f *Form) Values() Values {
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Errors() map[string]string { return f.errors }

func (f *Form) FieldError(name string) string { return f.errors[name] }

// SetError records an externally-derived field error, e.g. a parse failure
// discovered while building the request payload.
func (f *Form) SetError(name, msg string) {
	if f.schema.Has(name) {
		f.errors[name] = msg
	}
}

func (f *Form) SetSubmitting(v bool) { f.submitting = v }
func (f *Form) IsSubmitting() bool   { return f.submitting }

// Reset replaces values wholesale: schema defaults first, then the provided
// values for known fields. Nothing from the previous record survives: a
// partial merge here is how stale fields leak into the next dialog open.
func (f *Form) Reset(values Values) {
	f.values = f.schema.Defaults()
	for name, v := range values {
		if f.schema.Has(name) {
			f.values[name] = v
		}
	}
	f.errors = map[string]string{}
	f.submitting = false
}

// Validate runs every constraint, fills Errors, and reports whether the form
// is submittable. It must pass before any mutation runs.
func (f *Form) Validate() bool {
	f.errors = map[string]string{}
	for _, field := range f.schema.Fields() {
		if msg := f.validateField(field); msg != "" {
			f.errors[field.Name] = msg
		}
	}
	return len(f.errors) == 0
}

// Err returns the current errors as a *ValidationError, or nil when clean.
func (f *Form) Err() error {
	if len(f.errors) == 0 {
		return nil
	}
	fields := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		fields[k] = v
	}
	return &ValidationError{Fields: fields}
}

func (f *Form) validateField(field Field) string {
	raw := strings.TrimSpace(f.values[field.Name])

	required := field.Required
	if !required && field.RequiredWhen != nil {
		required = field.RequiredWhen(f.values)
	}
	if raw == "" {
		if required {
			return fmt.Sprintf("%s is required", field.label())
		}
		// Absent and optional: no further checks.
		return ""
	}

	if field.MinLen > 0 && len(raw) < field.MinLen {
		return fmt.Sprintf("%s must be at least %d characters", field.label(), field.MinLen)
	}
	if field.MaxLen > 0 && len(raw) > field.MaxLen {
		return fmt.Sprintf("%s must be at most %d characters", field.label(), field.MaxLen)
	}

	if field.Numeric {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Sprintf("%s must be a number", field.label())
		}
		if field.Min != nil && n < *field.Min {
			return fmt.Sprintf("%s must be at least %v", field.label(), *field.Min)
		}
		if field.Max != nil && n > *field.Max {
			return fmt.Sprintf("%s must be at most %v", field.label(), *field.Max)
		}
	}

	if field.Pattern != nil && !field.Pattern.MatchString(raw) {
		if field.PatternMsg != "" {
			return fmt.Sprintf("%s %s", field.label(), field.PatternMsg)
		}
		return fmt.Sprintf("%s has an invalid format", field.label())
	}

	if len(field.Enum) > 0 {
		ok := false
		for _, e := range field.Enum {
			if raw == e {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Sprintf("%s must be one of: %s", field.label(), strings.Join(field.Enum, ", "))
		}
	}

	return ""
}
