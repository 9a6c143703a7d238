package supamcp

import (
	"context"
	"testing"

	"github.com/jcernauske/supabase-mcp-server/internal/postgrest"
)

func TestCreateRecords_InsertsAndReturnsData(t *testing.T) {
	t.Parallel()
	client := &recordingClient{rows: []map[string]any{{"id": float64(1), "name": "Bob"}}}
	s := newTestMcp(t, client, Config{})

	resp := s.CreateRecords(context.Background(), CreateRecordsInput{
		TableName: "users",
		Data:      []map[string]any{{"name": "Bob"}},
	})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
	assertCalls(t, client, []string{"table(users)", `insert([{"name":"Bob"}])`, "execute()"})
	if resp.Data[0]["name"] != "Bob" {
		t.Fatalf("unexpected row: %v", resp.Data[0])
	}
}

func TestCreateRecords_BackendError(t *testing.T) {
	t.Parallel()
	client := &recordingClient{err: &postgrest.APIError{
		StatusCode: 409,
		Message:    "duplicate key value violates unique constraint",
		Details:    "Key (name)=(Bob) already exists.",
	}}
	s := newTestMcp(t, client, Config{})

	resp := s.CreateRecords(context.Background(), CreateRecordsInput{
		TableName: "users",
		Data:      []map[string]any{{"name": "Bob"}},
	})
	if resp.Error != "Supabase API Error: duplicate key value violates unique constraint" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
	if resp.Details != "Key (name)=(Bob) already exists." {
		t.Fatalf("unexpected details: %v", resp.Details)
	}
}

func TestCreateRecords_BlockedInReadOnlyMode(t *testing.T) {
	t.Parallel()
	client := &recordingClient{}
	s := newTestMcp(t, client, Config{ReadOnly: true})

	resp := s.CreateRecords(context.Background(), CreateRecordsInput{
		TableName: "users",
		Data:      []map[string]any{{"name": "Bob"}},
	})
	if resp.Error != "Write operations are disabled: server is in read_only mode" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", client.calls)
	}
}
