package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/divide/errors"
)

type sample struct {
	Threshold  int     `mapstructure:"threshold" validate:"gte=1"`
	Strategy   string  `mapstructure:"strategy" validate:"oneof=equal dynamic"`
	SampleRate float64 `validate:"gte=0,lte=1"`
}

func TestStructValid(t *testing.T) {
	if err := Struct(sample{Threshold: 10, Strategy: "equal", SampleRate: 0.5}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructInvalid(t *testing.T) {
	err := Struct(sample{Threshold: 0, Strategy: "random", SampleRate: 2})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}

	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field errors in details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(fields), fields)
	}

	want := map[string]string{
		"threshold":   "must be at least 1",
		"strategy":    "must be one of: equal dynamic",
		"sample_rate": "must be at most 1",
	}
	for _, f := range fields {
		if want[f.Field] != f.Message {
			t.Errorf("field %q: expected %q, got %q", f.Field, want[f.Field], f.Message)
		}
	}
	if !strings.Contains(appErr.Message, "threshold: must be at least 1") {
		t.Errorf("expected aggregated message, got %q", appErr.Message)
	}
}

func TestStructNonStruct(t *testing.T) {
	err := Struct(42)
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG for non-struct input, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Threshold":  "threshold",
		"SampleRate": "sample_rate",
		"a":          "a",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
