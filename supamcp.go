package supamcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jcernauske/supabase-mcp-server/internal/access"
	"github.com/jcernauske/supabase-mcp-server/internal/errprompt"
	"github.com/jcernauske/supabase-mcp-server/internal/postgrest"
	"github.com/jcernauske/supabase-mcp-server/internal/sanitize"
)

// SupabaseMcp is the core engine that provides the ReadRows, CreateRecords,
// UpdateRecords, and DeleteRecords tools. It holds no per-call state — the
// client handle is created once and shared read-only — so all exported
// methods are safe for concurrent use from multiple goroutines.
type SupabaseMcp struct {
	config     Config
	client     Client
	access     *access.Checker
	sanitizer  *sanitize.Sanitizer
	errPrompts *errprompt.Matcher
	logger     zerolog.Logger
}

// Option is a functional option for New().
type Option func(*options)

type options struct {
	client Client
}

// WithClient injects a backend client, replacing the PostgREST client New
// would otherwise build from endpointURL and serviceKey (both are ignored
// when a client is injected). This is the seam tests use to mock the backend.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// New creates a new SupabaseMcp instance. endpointURL is the Supabase
// project URL and serviceKey the service-role key; both are required unless
// WithClient supplies a handle. Panics on invalid config. Returns error only
// for runtime failures (e.g. malformed endpoint URL, invalid regex rules).
func New(endpointURL, serviceKey string, config Config, logger zerolog.Logger, opts ...Option) (*SupabaseMcp, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// --- Config validation (panics on invalid config) ---

	if config.Query.RequestTimeoutSeconds < 0 {
		panic("supamcp: query.request_timeout_seconds must be >= 0")
	}
	if config.Query.MaxResultLength < 0 {
		panic("supamcp: query.max_result_length must be >= 0")
	}

	// Apply defaults for zero values
	if config.Query.RequestTimeoutSeconds == 0 {
		config.Query.RequestTimeoutSeconds = 30
	}
	if config.Query.MaxResultLength == 0 {
		config.Query.MaxResultLength = 100000
	}

	// --- Resolve the backend client ---

	client := o.client
	if client == nil {
		if endpointURL == "" {
			panic("supamcp: endpointURL must be non-empty")
		}
		if serviceKey == "" {
			panic("supamcp: serviceKey must be non-empty")
		}
		pc, err := postgrest.NewClient(endpointURL, serviceKey,
			postgrest.WithTimeout(time.Duration(config.Query.RequestTimeoutSeconds)*time.Second))
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgREST client: %w", err)
		}
		client = restClient{c: pc}
	}

	// --- Initialize internal components ---

	checker, err := access.NewChecker(access.Config{
		ReadOnly:    config.ReadOnly,
		AllowTables: config.Access.AllowTables,
		DenyTables:  config.Access.DenyTables,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid access rules: %w", err)
	}

	san, err := sanitize.NewSanitizer(mapSanitizationRules(config.Sanitization))
	if err != nil {
		return nil, fmt.Errorf("invalid sanitization rules: %w", err)
	}

	matcher, err := errprompt.NewMatcher(mapErrorPromptRules(config.ErrorPrompts))
	if err != nil {
		return nil, fmt.Errorf("invalid error prompt rules: %w", err)
	}

	return &SupabaseMcp{
		config:     config,
		client:     client,
		access:     checker,
		sanitizer:  san,
		errPrompts: matcher,
		logger:     logger,
	}, nil
}

// Ping validates the endpoint and credentials with a single REST round trip.
// Injected clients without a Ping method are assumed reachable.
func (s *SupabaseMcp) Ping(ctx context.Context) error {
	if p, ok := s.client.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (r restClient) Ping(ctx context.Context) error {
	return r.c.Ping(ctx)
}

// successResponse sanitizes and truncates backend rows, logs the executed
// operation, and wraps the rows in the wire Response shape. Shared by all
// four operations so their success path stays symmetric.
func (s *SupabaseMcp) successResponse(op, table string, start time.Time, rows []map[string]any) *Response {
	rows = s.sanitizer.SanitizeRows(rows)
	resp := &Response{Data: rows}
	s.truncateIfNeeded(resp)

	logEvent := s.logger.Info().
		Str("tool", op).
		Str("table", table).
		Dur("duration", time.Since(start)).
		Int("row_count", len(rows))
	if s.sanitizer.HasRules() {
		logEvent = logEvent.Bool("sanitized", true)
	}
	logEvent.Msg("operation executed")

	return resp
}

// truncateIfNeeded truncates response data if it exceeds MaxResultLength
// (in characters).
func (s *SupabaseMcp) truncateIfNeeded(resp *Response) {
	jsonBytes, _ := json.Marshal(resp.Data)
	jsonStr := string(jsonBytes)
	if utf8.RuneCountInString(jsonStr) <= s.config.Query.MaxResultLength {
		return
	}
	runes := []rune(jsonStr)
	truncated := string(runes[:s.config.Query.MaxResultLength])
	resp.Data = nil
	resp.Error = truncated + "...[truncated] Result is too long! Apply more filters or select fewer columns!"
}

// mapSanitizationRules converts supamcp SanitizationRules to internal sanitize.Rules.
func mapSanitizationRules(rules []SanitizationRule) []sanitize.Rule {
	result := make([]sanitize.Rule, len(rules))
	for i, r := range rules {
		result[i] = sanitize.Rule{
			Pattern:     r.Pattern,
			Replacement: r.Replacement,
		}
	}
	return result
}

// mapErrorPromptRules converts supamcp ErrorPromptRules to internal errprompt.Rules.
func mapErrorPromptRules(rules []ErrorPromptRule) []errprompt.Rule {
	result := make([]errprompt.Rule, len(rules))
	for i, r := range rules {
		result[i] = errprompt.Rule{
			Pattern: r.Pattern,
			Message: r.Message,
		}
	}
	return result
}
