package supamcp

import (
	"context"

	"github.com/jcernauske/supabase-mcp-server/internal/postgrest"
)

// Client hands out query builders scoped to a single table. The engine holds
// exactly one Client for its lifetime and treats it as read-only; it is safe
// for concurrent use.
type Client interface {
	Table(name string) TableQuery
}

// TableQuery selects the verb for a table-scoped request. Exactly one verb
// method is called per operation.
type TableQuery interface {
	Select(columns string) QueryBuilder
	Insert(records []map[string]any) QueryBuilder
	Update(payload map[string]any) QueryBuilder
	Delete() QueryBuilder
}

// QueryBuilder is the chainable handle for an in-progress request, scoped to
// one table and one verb. Filter methods narrow the affected rows; Execute
// performs the single blocking round trip against the backend.
type QueryBuilder interface {
	Eq(column string, value any) QueryBuilder
	Neq(column string, value any) QueryBuilder
	Gt(column string, value any) QueryBuilder
	Lt(column string, value any) QueryBuilder
	Gte(column string, value any) QueryBuilder
	Lte(column string, value any) QueryBuilder
	Like(column string, pattern any) QueryBuilder
	In(column string, values []any) QueryBuilder
	Execute(ctx context.Context) ([]map[string]any, error)
}

// restClient adapts the concrete PostgREST client to the Client interface.
// The adapter exists because the concrete builder's chainable methods return
// the concrete type.
type restClient struct {
	c *postgrest.Client
}

func (r restClient) Table(name string) TableQuery {
	return restQuery{b: r.c.Table(name)}
}

type restQuery struct {
	b *postgrest.Builder
}

func (r restQuery) Select(columns string) QueryBuilder {
	return restQuery{b: r.b.Select(columns)}
}

func (r restQuery) Insert(records []map[string]any) QueryBuilder {
	return restQuery{b: r.b.Insert(records)}
}

func (r restQuery) Update(payload map[string]any) QueryBuilder {
	return restQuery{b: r.b.Update(payload)}
}

func (r restQuery) Delete() QueryBuilder {
	return restQuery{b: r.b.Delete()}
}

func (r restQuery) Eq(column string, value any) QueryBuilder {
	return restQuery{b: r.b.Eq(column, value)}
}

func (r restQuery) Neq(column string, value any) QueryBuilder {
	return restQuery{b: r.b.Neq(column, value)}
}

func (r restQuery) Gt(column string, value any) QueryBuilder {
	return restQuery{b: r.b.Gt(column, value)}
}

func (r restQuery) Lt(column string, value any) QueryBuilder {
	return restQuery{b: r.b.Lt(column, value)}
}

func (r restQuery) Gte(column string, value any) QueryBuilder {
	return restQuery{b: r.b.Gte(column, value)}
}

func (r restQuery) Lte(column string, value any) QueryBuilder {
	return restQuery{b: r.b.Lte(column, value)}
}

func (r restQuery) Like(column string, pattern any) QueryBuilder {
	return restQuery{b: r.b.Like(column, pattern)}
}

func (r restQuery) In(column string, values []any) QueryBuilder {
	return restQuery{b: r.b.In(column, values)}
}

func (r restQuery) Execute(ctx context.Context) ([]map[string]any, error) {
	return r.b.Execute(ctx)
}
