package supamcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const filterParamDescription = "Filters to apply, each a [column, operator, value] triple. " +
	"Supported operators: eq, neq, gt, lt, gte, lte, like, in (in takes an array value). " +
	`Example: [["country", "eq", "New Zealand"], ["id", "gt", 2]]`

// RegisterMCPTools registers read_rows, create_records, update_records, and
// delete_records as MCP tools on the given MCP server.
func RegisterMCPTools(mcpServer *server.MCPServer, s *SupabaseMcp) {
	// read_rows tool
	readTool := mcp.NewTool("read_rows",
		mcp.WithDescription("Read rows from a table in the Supabase database with optional filtering. Returns matching rows as JSON."),
		mcp.WithString("table_name",
			mcp.Required(),
			mcp.Description("The name of the table to read from"),
		),
		mcp.WithString("columns",
			mcp.Description(`Comma-separated column names to retrieve. Defaults to "*".`),
			mcp.DefaultString("*"),
		),
		mcp.WithArray("filters",
			mcp.Description(filterParamDescription),
			mcp.Items(map[string]any{"type": "array"}),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	mcpServer.AddTool(readTool, s.loggedToolHandler("read_rows", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := req.RequireString("table_name")
		if err != nil {
			return mcp.NewToolResultError("table_name parameter is required"), nil
		}
		filters, err := parseFilters(req.GetArguments()["filters"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		resp := s.ReadRows(ctx, ReadRowsInput{
			TableName: table,
			Columns:   req.GetString("columns", ""),
			Filters:   filters,
		})
		return toolResult(resp)
	}))

	// create_records tool
	createTool := mcp.NewTool("create_records",
		mcp.WithDescription("Create one or more records in a table in the Supabase database."),
		mcp.WithString("table_name",
			mcp.Required(),
			mcp.Description("The name of the table to insert records into"),
		),
		mcp.WithArray("data",
			mcp.Required(),
			mcp.Description("Records to create, each an object mapping column names to values"),
			mcp.Items(map[string]any{"type": "object"}),
		),
	)

	mcpServer.AddTool(createTool, s.loggedToolHandler("create_records", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := req.RequireString("table_name")
		if err != nil {
			return mcp.NewToolResultError("table_name parameter is required"), nil
		}
		records, err := parseRecords(req.GetArguments()["data"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		resp := s.CreateRecords(ctx, CreateRecordsInput{TableName: table, Data: records})
		return toolResult(resp)
	}))

	// update_records tool
	updateTool := mcp.NewTool("update_records",
		mcp.WithDescription("Update records in a table matched by the given filters."),
		mcp.WithString("table_name",
			mcp.Required(),
			mcp.Description("The name of the table to update records in"),
		),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("New values as an object mapping column names to values, applied to every matched row"),
		),
		mcp.WithArray("filters",
			mcp.Required(),
			mcp.Description(filterParamDescription),
			mcp.Items(map[string]any{"type": "array"}),
		),
	)

	mcpServer.AddTool(updateTool, s.loggedToolHandler("update_records", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := req.RequireString("table_name")
		if err != nil {
			return mcp.NewToolResultError("table_name parameter is required"), nil
		}
		payload, err := parseRecord(req.GetArguments()["data"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filters, err := parseFilters(req.GetArguments()["filters"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		resp := s.UpdateRecords(ctx, UpdateRecordsInput{TableName: table, Data: payload, Filters: filters})
		return toolResult(resp)
	}))

	// delete_records tool
	deleteTool := mcp.NewTool("delete_records",
		mcp.WithDescription("Delete records from a table matched by the given filters."),
		mcp.WithString("table_name",
			mcp.Required(),
			mcp.Description("The name of the table to delete records from"),
		),
		mcp.WithArray("filters",
			mcp.Required(),
			mcp.Description(filterParamDescription),
			mcp.Items(map[string]any{"type": "array"}),
		),
	)

	mcpServer.AddTool(deleteTool, s.loggedToolHandler("delete_records", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := req.RequireString("table_name")
		if err != nil {
			return mcp.NewToolResultError("table_name parameter is required"), nil
		}
		filters, err := parseFilters(req.GetArguments()["filters"])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		resp := s.DeleteRecords(ctx, DeleteRecordsInput{TableName: table, Filters: filters})
		return toolResult(resp)
	}))
}

// toolResult marshals a Response into a text result. Operation failures are
// carried inside the Response body so the uniform {"error", "details"} shape
// survives the MCP wire; only malformed tool arguments use the MCP
// error-result channel.
func toolResult(resp *Response) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError("failed to marshal operation result"), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// parseFilters decodes the filters argument. Each filter is either a
// [column, operator, value] triple or an object with column/operator/value
// keys (some agents send the object form despite the declared schema).
func parseFilters(raw any) ([]Filter, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("filters must be an array of [column, operator, value] triples")
	}
	filters := make([]Filter, 0, len(items))
	for i, item := range items {
		switch f := item.(type) {
		case []any:
			if len(f) != 3 {
				return nil, fmt.Errorf("filter %d must have exactly 3 elements [column, operator, value], got %d", i, len(f))
			}
			column, ok := f[0].(string)
			if !ok {
				return nil, fmt.Errorf("filter %d: column must be a string", i)
			}
			operator, ok := f[1].(string)
			if !ok {
				return nil, fmt.Errorf("filter %d: operator must be a string", i)
			}
			filters = append(filters, Filter{Column: column, Operator: Operator(operator), Value: f[2]})
		case map[string]any:
			column, ok := f["column"].(string)
			if !ok {
				return nil, fmt.Errorf("filter %d: column must be a string", i)
			}
			operator, ok := f["operator"].(string)
			if !ok {
				return nil, fmt.Errorf("filter %d: operator must be a string", i)
			}
			filters = append(filters, Filter{Column: column, Operator: Operator(operator), Value: f["value"]})
		default:
			return nil, fmt.Errorf("filter %d must be a [column, operator, value] triple", i)
		}
	}
	return filters, nil
}

// parseRecords decodes the create data argument: an array of objects, or a
// single object treated as one record.
func parseRecords(raw any) ([]map[string]any, error) {
	switch data := raw.(type) {
	case []any:
		records := make([]map[string]any, 0, len(data))
		for i, item := range data {
			record, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("data element %d must be an object mapping column names to values", i)
			}
			records = append(records, record)
		}
		return records, nil
	case map[string]any:
		return []map[string]any{data}, nil
	default:
		return nil, fmt.Errorf("data parameter is required and must be an array of objects")
	}
}

// parseRecord decodes the update data argument: a single object.
func parseRecord(raw any) (map[string]any, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data parameter is required and must be an object mapping column names to values")
	}
	return record, nil
}

// loggedToolHandler wraps a tool handler to log request and response lengths
// under a per-call ID.
func (s *SupabaseMcp) loggedToolHandler(tool string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		reqLen := requestLength(req)
		result, err := handler(ctx, req)
		respLen := resultLength(result)
		s.logger.Info().
			Str("tool", tool).
			Str("call_id", callID).
			Int("request_bytes", reqLen).
			Int("response_bytes", respLen).
			Msg("tool call")
		return result, err
	}
}

// requestLength returns the JSON-encoded byte length of the request arguments.
func requestLength(req mcp.CallToolRequest) int {
	args := req.GetArguments()
	if len(args) == 0 {
		return 0
	}
	b, err := json.Marshal(args)
	if err != nil {
		return 0
	}
	return len(b)
}

// resultLength returns the total byte length of text content in a CallToolResult.
func resultLength(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	total := 0
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			total += len(tc.Text)
		}
	}
	return total
}
