package supamcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

// recordingClient is a mock backend that records every builder call in
// order and returns canned rows or a canned error from Execute.
type recordingClient struct {
	calls []string
	rows  []map[string]any
	err   error
}

func (c *recordingClient) record(call string) {
	c.calls = append(c.calls, call)
}

func (c *recordingClient) Table(name string) TableQuery {
	c.record("table(" + name + ")")
	return &recordingQuery{client: c}
}

type recordingQuery struct {
	client *recordingClient
}

func (q *recordingQuery) Select(columns string) QueryBuilder {
	q.client.record("select(" + columns + ")")
	return q
}

func (q *recordingQuery) Insert(records []map[string]any) QueryBuilder {
	b, _ := json.Marshal(records)
	q.client.record("insert(" + string(b) + ")")
	return q
}

func (q *recordingQuery) Update(payload map[string]any) QueryBuilder {
	b, _ := json.Marshal(payload)
	q.client.record("update(" + string(b) + ")")
	return q
}

func (q *recordingQuery) Delete() QueryBuilder {
	q.client.record("delete()")
	return q
}

func (q *recordingQuery) Eq(column string, value any) QueryBuilder {
	q.client.record(fmt.Sprintf("eq(%s,%v)", column, value))
	return q
}

func (q *recordingQuery) Neq(column string, value any) QueryBuilder {
	q.client.record(fmt.Sprintf("neq(%s,%v)", column, value))
	return q
}

func (q *recordingQuery) Gt(column string, value any) QueryBuilder {
	q.client.record(fmt.Sprintf("gt(%s,%v)", column, value))
	return q
}

func (q *recordingQuery) Lt(column string, value any) QueryBuilder {
	q.client.record(fmt.Sprintf("lt(%s,%v)", column, value))
	return q
}

func (q *recordingQuery) Gte(column string, value any) QueryBuilder {
	q.client.record(fmt.Sprintf("gte(%s,%v)", column, value))
	return q
}

func (q *recordingQuery) Lte(column string, value any) QueryBuilder {
	q.client.record(fmt.Sprintf("lte(%s,%v)", column, value))
	return q
}

func (q *recordingQuery) Like(column string, pattern any) QueryBuilder {
	q.client.record(fmt.Sprintf("like(%s,%v)", column, pattern))
	return q
}

func (q *recordingQuery) In(column string, values []any) QueryBuilder {
	q.client.record(fmt.Sprintf("in(%s,%v)", column, values))
	return q
}

func (q *recordingQuery) Execute(ctx context.Context) ([]map[string]any, error) {
	q.client.record("execute()")
	return q.client.rows, q.client.err
}

// newTestMcp builds an engine around the mock client with a no-op logger.
func newTestMcp(t *testing.T, client Client, config Config) *SupabaseMcp {
	t.Helper()
	s, err := New("", "", config, zerolog.Nop(), WithClient(client))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

// assertCalls fails unless the recorded call sequence matches exactly.
func assertCalls(t *testing.T, client *recordingClient, expected []string) {
	t.Helper()
	if len(client.calls) != len(expected) {
		t.Fatalf("expected calls %v, got %v", expected, client.calls)
	}
	for i, call := range expected {
		if client.calls[i] != call {
			t.Fatalf("call %d: expected %q, got %q (full sequence: %v)", i, call, client.calls[i], client.calls)
		}
	}
}
