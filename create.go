package supamcp

import (
	"context"
	"time"

	"github.com/jcernauske/supabase-mcp-server/internal/access"
)

// CreateRecords inserts one or more records into a table. Create never
// takes filters. The returned Response carries the created rows as the
// backend represents them.
func (s *SupabaseMcp) CreateRecords(ctx context.Context, input CreateRecordsInput) *Response {
	start := time.Now()

	if err := s.access.Check(input.TableName, access.Write); err != nil {
		return s.handleError("create_records", input.TableName, err)
	}

	rows, err := s.client.Table(input.TableName).Insert(input.Data).Execute(ctx)
	if err != nil {
		return s.handleError("create_records", input.TableName, err)
	}

	return s.successResponse("create_records", input.TableName, start, rows)
}
