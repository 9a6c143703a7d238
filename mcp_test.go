package supamcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestParseFilters_TripleForm(t *testing.T) {
	t.Parallel()
	filters, err := parseFilters([]any{
		[]any{"country", "eq", "NZ"},
		[]any{"id", "gt", float64(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(filters))
	}
	if filters[0] != (Filter{Column: "country", Operator: OpEq, Value: "NZ"}) {
		t.Fatalf("unexpected filter: %+v", filters[0])
	}
	if filters[1].Operator != OpGt || filters[1].Value != float64(2) {
		t.Fatalf("unexpected filter: %+v", filters[1])
	}
}

func TestParseFilters_ObjectForm(t *testing.T) {
	t.Parallel()
	filters, err := parseFilters([]any{
		map[string]any{"column": "country", "operator": "eq", "value": "NZ"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters[0] != (Filter{Column: "country", Operator: OpEq, Value: "NZ"}) {
		t.Fatalf("unexpected filter: %+v", filters[0])
	}
}

func TestParseFilters_Nil(t *testing.T) {
	t.Parallel()
	filters, err := parseFilters(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters != nil {
		t.Fatalf("expected nil filters, got %v", filters)
	}
}

func TestParseFilters_WrongTripleLength(t *testing.T) {
	t.Parallel()
	_, err := parseFilters([]any{[]any{"country", "eq"}})
	if err == nil {
		t.Fatal("expected error for 2-element filter")
	}
}

func TestParseFilters_NonStringOperator(t *testing.T) {
	t.Parallel()
	_, err := parseFilters([]any{[]any{"country", float64(1), "NZ"}})
	if err == nil {
		t.Fatal("expected error for non-string operator")
	}
}

func TestParseFilters_NotAnArray(t *testing.T) {
	t.Parallel()
	_, err := parseFilters("country=eq.NZ")
	if err == nil {
		t.Fatal("expected error for non-array filters")
	}
}

func TestParseRecords_List(t *testing.T) {
	t.Parallel()
	records, err := parseRecords([]any{
		map[string]any{"name": "Bob"},
		map[string]any{"name": "Alice"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0]["name"] != "Bob" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestParseRecords_SingleObject(t *testing.T) {
	t.Parallel()
	records, err := parseRecords(map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Bob" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestParseRecords_Invalid(t *testing.T) {
	t.Parallel()
	if _, err := parseRecords(nil); err == nil {
		t.Fatal("expected error for nil data")
	}
	if _, err := parseRecords([]any{"not an object"}); err == nil {
		t.Fatal("expected error for non-object element")
	}
}

func TestParseRecord_Invalid(t *testing.T) {
	t.Parallel()
	if _, err := parseRecord([]any{map[string]any{"a": 1}}); err == nil {
		t.Fatal("expected error for array payload")
	}
}

func TestRequestLength_WithArguments(t *testing.T) {
	t.Parallel()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "read_rows",
			Arguments: map[string]any{"table_name": "users"},
		},
	}
	length := requestLength(req)
	// {"table_name":"users"} = 22 bytes
	if length != 22 {
		t.Fatalf("expected request length 22, got %d", length)
	}
}

func TestRequestLength_NoArguments(t *testing.T) {
	t.Parallel()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "read_rows",
		},
	}
	if length := requestLength(req); length != 0 {
		t.Fatalf("expected request length 0 for no arguments, got %d", length)
	}
}

func TestResultLength_TextResult(t *testing.T) {
	t.Parallel()
	result := mcp.NewToolResultText(`{"data":[]}`)
	if length := resultLength(result); length != 11 {
		t.Fatalf("expected result length 11, got %d", length)
	}
}

func TestResultLength_NilResult(t *testing.T) {
	t.Parallel()
	if length := resultLength(nil); length != 0 {
		t.Fatalf("expected result length 0 for nil, got %d", length)
	}
}

func TestToolResult_CarriesErrorInBody(t *testing.T) {
	t.Parallel()
	result, err := toolResult(&Response{Error: "Supabase API Error: X", Details: "Y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if tc.Text != `{"error":"Supabase API Error: X","details":"Y"}` {
		t.Fatalf("unexpected body: %s", tc.Text)
	}
}
