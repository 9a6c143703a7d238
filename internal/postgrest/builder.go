package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Builder is a chainable handle for an in-progress request, scoped to one
// table. A verb method (Select, Insert, Update, Delete) must be called
// exactly once before Execute; filter methods may be chained in any order
// after the verb and are encoded as PostgREST query parameters
// (column=op.value) in the order they are applied.
type Builder struct {
	client *Client
	table  string
	method string
	body   any
	params url.Values
	order  []string // param encode order, insertion-ordered
}

// Select scopes the request to a read of the given columns ("*" for all).
func (b *Builder) Select(columns string) *Builder {
	b.method = http.MethodGet
	b.addParam("select", columns)
	return b
}

// Insert scopes the request to creating the given records.
func (b *Builder) Insert(records []map[string]any) *Builder {
	b.method = http.MethodPost
	b.body = records
	return b
}

// Update scopes the request to applying payload to every matched row.
func (b *Builder) Update(payload map[string]any) *Builder {
	b.method = http.MethodPatch
	b.body = payload
	return b
}

// Delete scopes the request to deleting every matched row.
func (b *Builder) Delete() *Builder {
	b.method = http.MethodDelete
	return b
}

// Eq narrows to rows where column = value.
func (b *Builder) Eq(column string, value any) *Builder {
	return b.filter(column, "eq", value)
}

// Neq narrows to rows where column != value.
func (b *Builder) Neq(column string, value any) *Builder {
	return b.filter(column, "neq", value)
}

// Gt narrows to rows where column > value.
func (b *Builder) Gt(column string, value any) *Builder {
	return b.filter(column, "gt", value)
}

// Lt narrows to rows where column < value.
func (b *Builder) Lt(column string, value any) *Builder {
	return b.filter(column, "lt", value)
}

// Gte narrows to rows where column >= value.
func (b *Builder) Gte(column string, value any) *Builder {
	return b.filter(column, "gte", value)
}

// Lte narrows to rows where column <= value.
func (b *Builder) Lte(column string, value any) *Builder {
	return b.filter(column, "lte", value)
}

// Like narrows to rows where column matches the pattern (PostgREST wildcard
// syntax, % or *).
func (b *Builder) Like(column string, pattern any) *Builder {
	return b.filter(column, "like", pattern)
}

// In narrows to rows where column is one of values.
func (b *Builder) In(column string, values []any) *Builder {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = quoteReserved(literal(v))
	}
	b.addParam(column, "in.("+strings.Join(parts, ",")+")")
	return b
}

func (b *Builder) filter(column, op string, value any) *Builder {
	b.addParam(column, op+"."+literal(value))
	return b
}

func (b *Builder) addParam(key, value string) {
	if _, seen := b.params[key]; !seen {
		b.order = append(b.order, key)
	}
	b.params.Add(key, value)
}

// Execute performs the single blocking round trip. Write verbs request
// return=representation so the affected rows come back in the body. A
// status >= 400 is returned as *APIError carrying the backend's structured
// error payload.
func (b *Builder) Execute(ctx context.Context) ([]map[string]any, error) {
	if b.method == "" {
		return nil, fmt.Errorf("postgrest: no verb selected for table %q", b.table)
	}

	var bodyReader io.Reader
	if b.body != nil {
		payload, err := json.Marshal(b.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	u := *b.client.baseURL
	u.Path = u.Path + "/" + b.table
	u.RawQuery = b.encodeParams()

	req, err := http.NewRequestWithContext(ctx, b.method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	b.client.setAuthHeaders(req)
	if b.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := b.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	return decodeRows(respBody)
}

// encodeParams encodes query parameters preserving filter application order.
// url.Values.Encode sorts keys alphabetically, which would reorder filters.
func (b *Builder) encodeParams() string {
	var buf strings.Builder
	for _, key := range b.order {
		for _, value := range b.params[key] {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(url.QueryEscape(key))
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(value))
		}
	}
	return buf.String()
}

// decodeRows flattens the response body to plain row mappings. PostgREST
// returns a JSON array for reads and representation writes; 204/empty
// bodies decode to an empty result.
func decodeRows(body []byte) ([]map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []map[string]any{}, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	// Single-object responses (e.g. Accept: application/vnd.pgrst.object+json)
	var row map[string]any
	if err := json.Unmarshal(body, &row); err == nil {
		return []map[string]any{row}, nil
	}

	return nil, fmt.Errorf("unexpected response body: %s", truncateBody(body))
}

// literal renders a filter value in PostgREST's query-parameter syntax.
func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// quoteReserved wraps an in-list element in double quotes when it contains
// characters PostgREST treats as list syntax.
func quoteReserved(s string) string {
	if s != "" && !strings.ContainsAny(s, `,()" `) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func truncateBody(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
