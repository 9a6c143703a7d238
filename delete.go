package supamcp

import (
	"context"
	"time"

	"github.com/jcernauske/supabase-mcp-server/internal/access"
)

// DeleteRecords deletes every row matched by the filter set.
func (s *SupabaseMcp) DeleteRecords(ctx context.Context, input DeleteRecordsInput) *Response {
	start := time.Now()

	if err := s.access.Check(input.TableName, access.Write); err != nil {
		return s.handleError("delete_records", input.TableName, err)
	}

	query, err := ApplyFilters(s.client.Table(input.TableName).Delete(), input.Filters)
	if err != nil {
		return s.handleError("delete_records", input.TableName, err)
	}

	rows, err := query.Execute(ctx)
	if err != nil {
		return s.handleError("delete_records", input.TableName, err)
	}

	return s.successResponse("delete_records", input.TableName, start, rows)
}
