package supamcp

import (
	"context"
	"time"

	"github.com/jcernauske/supabase-mcp-server/internal/access"
)

// UpdateRecords applies the payload to every row matched by the filter set.
func (s *SupabaseMcp) UpdateRecords(ctx context.Context, input UpdateRecordsInput) *Response {
	start := time.Now()

	if err := s.access.Check(input.TableName, access.Write); err != nil {
		return s.handleError("update_records", input.TableName, err)
	}

	query, err := ApplyFilters(s.client.Table(input.TableName).Update(input.Data), input.Filters)
	if err != nil {
		return s.handleError("update_records", input.TableName, err)
	}

	rows, err := query.Execute(ctx)
	if err != nil {
		return s.handleError("update_records", input.TableName, err)
	}

	return s.successResponse("update_records", input.TableName, start, rows)
}
