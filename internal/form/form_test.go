package form

import (
	"regexp"
	"strings"
	"testing"
)

func packageSchema() Schema {
	return NewSchema(
		Field{Name: "name", Required: true, MinLen: 3, MaxLen: 60},
		Field{Name: "tokenAmount", Required: true, Numeric: true, Min: FloatPtr(1)},
		Field{Name: "priceUsd", Required: true, Numeric: true, Min: FloatPtr(0)},
		Field{Name: "discountPercentage", Numeric: true, Min: FloatPtr(0), Max: FloatPtr(100), Default: "0"},
		Field{Name: "limitedTimeOffer", Default: "false"},
		Field{
			Name:  "offerEndsAt",
			Label: "offer end date",
			RequiredWhen: func(v Values) bool {
				return strings.EqualFold(strings.TrimSpace(v["limitedTimeOffer"]), "true")
			},
		},
	)
}

func TestValidate_RequiredAndRange(t *testing.T) {
	f := New(packageSchema())
	f.SetField("name", "Starter")
	f.SetField("tokenAmount", "100")
	f.SetField("priceUsd", "10")
	f.SetField("discountPercentage", "150")

	if f.Validate() {
		t.Fatalf("expected validation failure")
	}
	if msg := f.FieldError("discountPercentage"); !strings.Contains(msg, "at most 100") {
		t.Fatalf("unexpected discount error: %q", msg)
	}
	if f.FieldError("name") != "" {
		t.Fatalf("name should be valid: %q", f.FieldError("name"))
	}

	f.SetField("discountPercentage", "15")
	if !f.Validate() {
		t.Fatalf("expected valid form; errors: %v", f.Errors())
	}
}

func TestValidate_EmptyNumericIsAbsentNotZero(t *testing.T) {
	f := New(packageSchema())
	f.SetField("name", "Starter")
	f.SetField("tokenAmount", "100")
	f.SetField("priceUsd", "10")
	f.SetField("discountPercentage", "")

	if !f.Validate() {
		t.Fatalf("blank optional numeric must not fail range checks: %v", f.Errors())
	}
	if _, ok := f.Number("discountPercentage"); ok {
		t.Fatalf("blank numeric must read as absent")
	}
}

func TestValidate_CrossFieldRequirement(t *testing.T) {
	f := New(packageSchema())
	f.SetField("name", "Flash Sale")
	f.SetField("tokenAmount", "500")
	f.SetField("priceUsd", "25")
	f.SetField("limitedTimeOffer", "true")

	if f.Validate() {
		t.Fatalf("expected offerEndsAt to be required while limitedTimeOffer is set")
	}
	if msg := f.FieldError("offerEndsAt"); !strings.Contains(msg, "required") {
		t.Fatalf("unexpected error: %q", msg)
	}

	f.SetField("limitedTimeOffer", "false")
	if !f.Validate() {
		t.Fatalf("expected valid once the flag is off: %v", f.Errors())
	}
}

func TestReset_IsWholesaleReplace(t *testing.T) {
	f := New(packageSchema())
	f.Reset(Values{
		"name":               "Pro Pack",
		"tokenAmount":        "1000",
		"priceUsd":           "99",
		"discountPercentage": "20",
	})
	f.Reset(Values{"name": "Starter"})

	if got := f.Value("name"); got != "Starter" {
		t.Fatalf("name = %q", got)
	}
	// Every other field is back at its schema default, not the prior record.
	if got := f.Value("tokenAmount"); got != "" {
		t.Fatalf("tokenAmount leaked from previous reset: %q", got)
	}
	if got := f.Value("discountPercentage"); got != "0" {
		t.Fatalf("discountPercentage should be schema default; got %q", got)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("reset must clear errors: %v", f.Errors())
	}
}

func TestReset_DropsUnknownFields(t *testing.T) {
	f := New(packageSchema())
	f.Reset(Values{"name": "X", "bogus": "y"})
	if got := f.Value("bogus"); got != "" {
		t.Fatalf("unknown field must not be stored; got %q", got)
	}
}

func TestSetField_ClearsFieldError(t *testing.T) {
	f := New(packageSchema())
	f.Validate()
	if f.FieldError("name") == "" {
		t.Fatalf("expected required error on name")
	}
	f.SetField("name", "Starter")
	if f.FieldError("name") != "" {
		t.Fatalf("editing a field must clear its error")
	}
}

func TestValidate_PatternAndEnum(t *testing.T) {
	s := NewSchema(
		Field{
			Name:       "primaryColor",
			Pattern:    regexp.MustCompile(`^#[0-9a-fA-F]{6}$`),
			PatternMsg: "must be a hex color like #1a2b3c",
		},
		Field{Name: "environment", Required: true, Enum: []string{"sandbox", "live"}},
	)
	f := New(s)
	f.SetField("primaryColor", "blue")
	f.SetField("environment", "prod")

	if f.Validate() {
		t.Fatalf("expected failures")
	}
	if msg := f.FieldError("primaryColor"); !strings.Contains(msg, "hex color") {
		t.Fatalf("pattern message: %q", msg)
	}
	if msg := f.FieldError("environment"); !strings.Contains(msg, "sandbox, live") {
		t.Fatalf("enum message: %q", msg)
	}

	f.SetField("primaryColor", "#AABB01")
	f.SetField("environment", "live")
	if !f.Validate() {
		t.Fatalf("expected valid: %v", f.Errors())
	}
}

func TestErr_ReturnsValidationError(t *testing.T) {
	f := New(packageSchema())
	if f.Validate() {
		t.Fatalf("expected invalid empty form")
	}
	err := f.Err()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError; got %T", err)
	}
	if _, ok := ve.Fields["name"]; !ok {
		t.Fatalf("expected name in fields: %v", ve.Fields)
	}
}
