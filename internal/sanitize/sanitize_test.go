package sanitize

import (
	"reflect"
	"testing"
)

func TestNewSanitizer_InvalidPattern(t *testing.T) {
	t.Parallel()
	_, err := NewSanitizer([]Rule{{Pattern: "(", Replacement: "x"}})
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestHasRules(t *testing.T) {
	t.Parallel()
	s, err := NewSanitizer(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HasRules() {
		t.Fatal("empty sanitizer must report no rules")
	}

	s, err = NewSanitizer([]Rule{{Pattern: "a", Replacement: "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.HasRules() {
		t.Fatal("sanitizer with rules must report them")
	}
}

func TestSanitizeRows_TopLevelStrings(t *testing.T) {
	t.Parallel()
	s, err := NewSanitizer([]Rule{
		{Pattern: `\d{3}-\d{2}-\d{4}`, Replacement: "[REDACTED]"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := []map[string]any{
		{"name": "Alice", "ssn": "123-45-6789", "age": float64(30)},
	}
	got := s.SanitizeRows(rows)
	want := []map[string]any{
		{"name": "Alice", "ssn": "[REDACTED]", "age": float64(30)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSanitizeRows_Nested(t *testing.T) {
	t.Parallel()
	s, err := NewSanitizer([]Rule{
		{Pattern: "secret", Replacement: "****"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := []map[string]any{
		{
			"profile": map[string]any{"bio": "my secret plan"},
			"tags":    []any{"secret-tag", float64(7), nil},
		},
	}
	got := s.SanitizeRows(rows)
	profile := got[0]["profile"].(map[string]any)
	if profile["bio"] != "my **** plan" {
		t.Fatalf("nested object not sanitized: %v", profile["bio"])
	}
	tags := got[0]["tags"].([]any)
	if tags[0] != "****-tag" {
		t.Fatalf("nested array not sanitized: %v", tags[0])
	}
	if tags[1] != float64(7) || tags[2] != nil {
		t.Fatalf("non-string values must pass through: %v", tags)
	}
}

func TestSanitizeRows_RulesApplyInOrder(t *testing.T) {
	t.Parallel()
	s, err := NewSanitizer([]Rule{
		{Pattern: "alpha", Replacement: "beta"},
		{Pattern: "beta", Replacement: "gamma"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.SanitizeRows([]map[string]any{{"v": "alpha"}})
	if got[0]["v"] != "gamma" {
		t.Fatalf("rules must chain top to bottom, got %v", got[0]["v"])
	}
}
