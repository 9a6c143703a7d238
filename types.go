package supamcp

// Operator is one of the eight recognized filter comparison/membership kinds.
// The set is closed: ApplyFilters rejects anything else before any network call.
type Operator string

const (
	OpEq   Operator = "eq"   // column = value
	OpNeq  Operator = "neq"  // column != value
	OpGt   Operator = "gt"   // column > value
	OpLt   Operator = "lt"   // column < value
	OpGte  Operator = "gte"  // column >= value
	OpLte  Operator = "lte"  // column <= value
	OpLike Operator = "like" // column LIKE pattern (PostgREST wildcard syntax)
	OpIn   Operator = "in"   // column IN (values) — value must be a sequence
)

// Filter is a single (column, operator, value) constraint. Filters are
// applied left-to-right as successive narrowing constraints (logical AND);
// no reordering, dedup, or conflict detection is performed.
type Filter struct {
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// ReadRowsInput is the input for the read_rows tool.
type ReadRowsInput struct {
	TableName string   `json:"table_name"`
	Columns   string   `json:"columns"` // comma-separated; empty means "*"
	Filters   []Filter `json:"filters,omitempty"`
}

// CreateRecordsInput is the input for the create_records tool.
// Data holds one mapping per row to insert. Create never takes filters.
type CreateRecordsInput struct {
	TableName string           `json:"table_name"`
	Data      []map[string]any `json:"data"`
}

// UpdateRecordsInput is the input for the update_records tool.
// Data is applied to every row matched by the filter set.
type UpdateRecordsInput struct {
	TableName string         `json:"table_name"`
	Data      map[string]any `json:"data"`
	Filters   []Filter       `json:"filters"`
}

// DeleteRecordsInput is the input for the delete_records tool.
type DeleteRecordsInput struct {
	TableName string   `json:"table_name"`
	Filters   []Filter `json:"filters"`
}

// Response is the uniform shape returned by every operation: either the
// backend's rows in Data, or a normalized error in Error (with optional
// structured Details for backend API errors). Exactly one of the two shapes
// is populated; callers only ever need to check Error.
type Response struct {
	Data    []map[string]any `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
	Details any              `json:"details,omitempty"`
}
