package supamcp

import (
	"fmt"
	"reflect"
)

// ApplyFilters threads the query handle through each filter in order,
// dispatching on the operator. The handle must already be scoped to one
// table and one verb. Filters may be empty.
//
// Any operator outside the closed set fails immediately with a
// *ValidationError; no filters after the offending one are applied and the
// handle built so far is discarded by the caller. ApplyFilters only builds
// the handle — it never executes the query.
//
// Centralizing operator dispatch here keeps the four operations symmetric
// and gives a single point to extend the operator set.
func ApplyFilters(query QueryBuilder, filters []Filter) (QueryBuilder, error) {
	for _, f := range filters {
		switch f.Operator {
		case OpEq:
			query = query.Eq(f.Column, f.Value)
		case OpNeq:
			query = query.Neq(f.Column, f.Value)
		case OpGt:
			query = query.Gt(f.Column, f.Value)
		case OpLt:
			query = query.Lt(f.Column, f.Value)
		case OpGte:
			query = query.Gte(f.Column, f.Value)
		case OpLte:
			query = query.Lte(f.Column, f.Value)
		case OpLike:
			query = query.Like(f.Column, f.Value)
		case OpIn:
			values, err := sequenceValues(f)
			if err != nil {
				return nil, err
			}
			query = query.In(f.Column, values)
		default:
			return nil, &ValidationError{
				Message: fmt.Sprintf("Unsupported filter operator: %s", f.Operator),
			}
		}
	}
	return query, nil
}

// sequenceValues coerces an "in" filter's value to a flat []any. Any slice
// or array element type is accepted; a scalar fails locally with a
// *ValidationError rather than being deferred to the backend's 400.
func sequenceValues(f Filter) ([]any, error) {
	switch v := f.Value.(type) {
	case []any:
		return v, nil
	case []string:
		values := make([]any, len(v))
		for i, s := range v {
			values[i] = s
		}
		return values, nil
	}

	rv := reflect.ValueOf(f.Value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		values := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			values[i] = rv.Index(i).Interface()
		}
		return values, nil
	}

	return nil, &ValidationError{
		Message: fmt.Sprintf("Filter operator %q requires a list value for column %q", OpIn, f.Column),
	}
}
