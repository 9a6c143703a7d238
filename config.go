package supamcp

// Config is the base configuration used by library mode via New().
type Config struct {
	Query        QueryConfig        `json:"query"`
	Access       AccessConfig       `json:"access"`
	ErrorPrompts []ErrorPromptRule  `json:"error_prompts"`
	Sanitization []SanitizationRule `json:"sanitization"`
	ReadOnly     bool               `json:"read_only"`
}

// ServerConfig embeds Config and adds server-only fields for CLI mode.
type ServerConfig struct {
	Config
	Server  ServerSettings `json:"server"`
	Logging LoggingConfig  `json:"logging"`
}

// QueryConfig holds request execution settings.
type QueryConfig struct {
	// RequestTimeoutSeconds is the HTTP client timeout inherited by every
	// backend round trip. 0 means the default (30s).
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	// MaxResultLength caps the JSON-encoded result size in characters.
	// 0 means the default (100000).
	MaxResultLength int `json:"max_result_length"`
}

// AccessConfig holds table-level access rules. Patterns are regular
// expressions matched against the full table name.
type AccessConfig struct {
	// AllowTables, when non-empty, restricts operations to matching tables.
	AllowTables []string `json:"allow_tables"`
	// DenyTables blocks matching tables. Deny wins over allow.
	DenyTables []string `json:"deny_tables"`
}

// ServerSettings holds transport settings for CLI mode.
type ServerSettings struct {
	Transport          string `json:"transport"` // "stdio" or "http"
	Port               int    `json:"port"`      // required for http transport
	HealthCheckEnabled bool   `json:"health_check_enabled"`
	HealthCheckPath    string `json:"health_check_path"`
}

// LoggingConfig holds logging settings for CLI mode.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
	Output string `json:"output"` // stdout, stderr, or file path
}

// ErrorPromptRule maps an error message pattern to a guidance message
// appended to the normalized error so agents can self-correct.
type ErrorPromptRule struct {
	Pattern string `json:"pattern"`
	Message string `json:"message"`
}

// SanitizationRule defines a regex-based field sanitization rule applied to
// string values in returned rows.
type SanitizationRule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
	Description string `json:"description"`
}
