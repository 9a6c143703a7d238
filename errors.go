package supamcp

import (
	"errors"

	"github.com/jcernauske/supabase-mcp-server/internal/access"
	"github.com/jcernauske/supabase-mcp-server/internal/postgrest"
)

// ValidationError is a caller fault detected locally, before any network
// call — an unsupported filter operator or a malformed filter value. Its
// message is returned to the agent verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// normalizeError maps each error kind to the wire Response shape:
//
//   - *ValidationError and *access.DeniedError surface their message as-is.
//   - *postgrest.APIError becomes "Supabase API Error: <message>" with the
//     backend's structured details attached when present.
//   - Everything else (network fault, decode fault, programming error)
//     becomes "An unexpected error occurred: <message>".
//
// Every reachable failure passes through here; nothing escapes an operation
// as a raised error.
func normalizeError(err error) *Response {
	var validationErr *ValidationError
	var deniedErr *access.DeniedError
	var apiErr *postgrest.APIError

	switch {
	case errors.As(err, &validationErr):
		return &Response{Error: validationErr.Message}
	case errors.As(err, &deniedErr):
		return &Response{Error: deniedErr.Message}
	case errors.As(err, &apiErr):
		return &Response{
			Error:   "Supabase API Error: " + apiErr.Message,
			Details: apiErr.Details,
		}
	default:
		return &Response{Error: "An unexpected error occurred: " + err.Error()}
	}
}

// handleError normalizes err into a Response, logs it, and appends any
// matching error prompt guidance so agents can self-correct.
func (s *SupabaseMcp) handleError(op, table string, err error) *Response {
	resp := normalizeError(err)
	prompt := s.errPrompts.Match(resp.Error)
	patterns := s.errPrompts.MatchedPatterns(resp.Error)

	logEvent := s.logger.Error().Err(err).Str("tool", op).Str("table", table)
	if len(patterns) > 0 {
		logEvent = logEvent.Strs("error_prompts", patterns)
	}
	logEvent.Msg("operation error")

	if prompt != "" {
		resp.Error = resp.Error + "\n\n" + prompt
	}
	return resp
}
