package postgrest

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLiteral(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "NZ", "NZ"},
		{"nil", nil, "null"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float64 whole", float64(3), "3"},
		{"float64 fraction", 3.5, "3.5"},
		{"json number", json.Number("12.25"), "12.25"},
		{"time", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "2026-01-02T03:04:05Z"},
	}
	for _, tc := range cases {
		if got := literal(tc.value); got != tc.expected {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}

func TestQuoteReserved(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"", `""`},
		{"a,b", `"a,b"`},
		{"(x)", `"(x)"`},
		{`say "hi"`, `"say \"hi\""`},
		{"two words", `"two words"`},
	}
	for _, tc := range cases {
		if got := quoteReserved(tc.in); got != tc.expected {
			t.Fatalf("quoteReserved(%q): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestEncodeParams_PreservesFilterOrder(t *testing.T) {
	t.Parallel()
	c := &Client{}
	b := c.Table("users").Select("*").Eq("zebra", "z").Eq("alpha", "a").Gt("id", 2)

	// url.Values.Encode would sort alphabetically; filter order must survive.
	expected := "select=%2A&zebra=eq.z&alpha=eq.a&id=gt.2"
	if got := b.encodeParams(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestEncodeParams_InList(t *testing.T) {
	t.Parallel()
	c := &Client{}
	b := c.Table("users").Select("*").In("id", []any{1, 2})

	expected := "select=%2A&id=in.%281%2C2%29"
	if got := b.encodeParams(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestEncodeParams_InListQuotesReserved(t *testing.T) {
	t.Parallel()
	c := &Client{}
	b := c.Table("users").Select("*").In("name", []any{"plain", "a,b"})

	expected := `select=%2A&name=in.%28plain%2C%22a%2Cb%22%29`
	if got := b.encodeParams(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestDecodeRows(t *testing.T) {
	t.Parallel()

	rows, err := decodeRows([]byte(`[{"id":1},{"id":2}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	rows, err = decodeRows(nil)
	if err != nil {
		t.Fatalf("unexpected error for empty body: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows for empty body, got %d", len(rows))
	}

	rows, err = decodeRows([]byte(`{"id":1}`))
	if err != nil {
		t.Fatalf("unexpected error for single object: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for single object, got %d", len(rows))
	}

	if _, err = decodeRows([]byte(`"scalar"`)); err == nil {
		t.Fatal("expected error for scalar body")
	}
}
