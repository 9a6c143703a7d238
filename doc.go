// Package supamcp exposes a Supabase (Postgres-over-PostgREST) backend as
// MCP tools for AI agents.
//
// It provides four tools — ReadRows, CreateRecords, UpdateRecords, and
// DeleteRecords — each a single stateless round trip against the Supabase
// REST API. Caller-supplied filters are compiled into the query builder's
// method chain by [ApplyFilters], and every failure is normalized into the
// uniform [Response] shape: tool calls never raise past the operation
// boundary.
//
// # Library Usage
//
//	s, err := supamcp.New(endpointURL, serviceKey, supamcp.Config{
//		Query: supamcp.QueryConfig{RequestTimeoutSeconds: 30},
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Use directly
//	resp := s.ReadRows(ctx, supamcp.ReadRowsInput{
//		TableName: "users",
//		Filters: []supamcp.Filter{
//			{Column: "country", Operator: supamcp.OpEq, Value: "NZ"},
//		},
//	})
//
//	// Or register as MCP tools
//	supamcp.RegisterMCPTools(mcpServer, s)
//
// The backend client is injected explicitly: New builds the real PostgREST
// client from the endpoint URL and service key, and WithClient swaps in any
// [Client] implementation (which is also how the tests mock the backend).
//
// Supported filter operators: eq, neq, gt, lt, gte, lte, like, in. The set
// is closed — an unrecognized operator fails the whole operation before any
// network call.
//
// Access rules (read_only mode, table allow/deny lists), regex result
// sanitization, and error prompts gate and post-process every call; all
// three are disabled by default.
//
// For full documentation, configuration reference, and examples, see:
// https://github.com/jcernauske/supabase-mcp-server
package supamcp
