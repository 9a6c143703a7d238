package supamcp

import (
	"context"
	"time"

	"github.com/jcernauske/supabase-mcp-server/internal/access"
)

// ReadRows reads rows from a table, optionally narrowed by filters. Columns
// defaults to "*" when empty. Every failure — unsupported operator, access
// denial, backend rejection, network fault — is returned inside the
// Response; ReadRows never fails with a raised error.
func (s *SupabaseMcp) ReadRows(ctx context.Context, input ReadRowsInput) *Response {
	start := time.Now()

	if err := s.access.Check(input.TableName, access.Read); err != nil {
		return s.handleError("read_rows", input.TableName, err)
	}

	columns := input.Columns
	if columns == "" {
		columns = "*"
	}

	query := s.client.Table(input.TableName).Select(columns)
	if len(input.Filters) > 0 {
		filtered, err := ApplyFilters(query, input.Filters)
		if err != nil {
			return s.handleError("read_rows", input.TableName, err)
		}
		query = filtered
	}

	rows, err := query.Execute(ctx)
	if err != nil {
		return s.handleError("read_rows", input.TableName, err)
	}

	return s.successResponse("read_rows", input.TableName, start, rows)
}
