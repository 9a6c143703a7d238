package supamcp

import (
	"context"
	"testing"

	"github.com/jcernauske/supabase-mcp-server/internal/postgrest"
)

func TestDeleteRecords_AppliesFilters(t *testing.T) {
	t.Parallel()
	client := &recordingClient{rows: []map[string]any{{"id": float64(1)}}}
	s := newTestMcp(t, client, Config{})

	resp := s.DeleteRecords(context.Background(), DeleteRecordsInput{
		TableName: "users",
		Filters:   []Filter{{Column: "id", Operator: OpEq, Value: 1}},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
	assertCalls(t, client, []string{"table(users)", "delete()", "eq(id,1)", "execute()"})
}

func TestDeleteRecords_BackendError(t *testing.T) {
	t.Parallel()
	client := &recordingClient{err: &postgrest.APIError{
		StatusCode: 403,
		Message:    "permission denied for table users",
	}}
	s := newTestMcp(t, client, Config{})

	resp := s.DeleteRecords(context.Background(), DeleteRecordsInput{
		TableName: "users",
		Filters:   []Filter{{Column: "id", Operator: OpEq, Value: 1}},
	})
	if resp.Error != "Supabase API Error: permission denied for table users" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
	if resp.Details != nil {
		t.Fatalf("expected no details, got %v", resp.Details)
	}
}

func TestDeleteRecords_BlockedInReadOnlyMode(t *testing.T) {
	t.Parallel()
	client := &recordingClient{}
	s := newTestMcp(t, client, Config{ReadOnly: true})

	resp := s.DeleteRecords(context.Background(), DeleteRecordsInput{
		TableName: "users",
		Filters:   []Filter{{Column: "id", Operator: OpEq, Value: 1}},
	})
	if resp.Error != "Write operations are disabled: server is in read_only mode" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", client.calls)
	}
}
