// Package configure implements the interactive configuration wizard.
package configure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	supamcp "github.com/jcernauske/supabase-mcp-server"
)

// Run runs the interactive configuration wizard.
// Reads existing config (if any), prompts for each field,
// writes updated config to the given path and optionally a .env file
// with the Supabase credentials.
func Run(configPath, envPath string) error {
	return run(configPath, envPath, os.Stdin, os.Stderr)
}

func run(configPath, envPath string, input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	cfg, isNew := loadExisting(configPath)
	if isNew {
		applyDefaults(cfg)
	}

	p := &prompter{
		scanner: scanner,
		output:  output,
		isNew:   isNew,
	}

	fmt.Fprintf(output, "supamcp configuration wizard\n")
	fmt.Fprintf(output, "Config file: %s\n\n", configPath)

	// Server
	fmt.Fprintf(output, "=== Server ===\n")
	cfg.Server.Transport = p.promptEnum("server.transport", cfg.Server.Transport, transports)
	if cfg.Server.Transport == "http" {
		cfg.Server.Port = p.promptPositiveInt("server.port", cfg.Server.Port, "must be > 0")
		cfg.Server.HealthCheckEnabled = p.promptBool("server.health_check_enabled", cfg.Server.HealthCheckEnabled)
		cfg.Server.HealthCheckPath = p.promptStringWithHint("server.health_check_path", cfg.Server.HealthCheckPath, "e.g. /healthz, required when health_check_enabled is true")
	}

	// Logging
	fmt.Fprintf(output, "\n=== Logging ===\n")
	cfg.Logging.Level = p.promptEnum("logging.level", cfg.Logging.Level, logLevels)
	cfg.Logging.Format = p.promptEnum("logging.format", cfg.Logging.Format, logFormats)
	cfg.Logging.Output = p.promptStringWithHint("logging.output", cfg.Logging.Output, "stdout, stderr, or file path")

	// Query
	fmt.Fprintf(output, "\n=== Query ===\n")
	cfg.Query.RequestTimeoutSeconds = p.promptPositiveInt("query.request_timeout_seconds", cfg.Query.RequestTimeoutSeconds, "seconds, must be > 0")
	cfg.Query.MaxResultLength = p.promptPositiveInt("query.max_result_length", cfg.Query.MaxResultLength, "characters, must be > 0")

	// Access
	fmt.Fprintf(output, "\n=== Access ===\n")
	cfg.ReadOnly = p.promptBool("read_only", cfg.ReadOnly)
	cfg.Access.AllowTables = p.promptStringList("access.allow_tables", cfg.Access.AllowTables, "table name regex; empty list allows all tables")
	cfg.Access.DenyTables = p.promptStringList("access.deny_tables", cfg.Access.DenyTables, "table name regex; deny wins over allow")

	// Array fields
	fmt.Fprintf(output, "\n=== Error Prompts ===\n")
	cfg.ErrorPrompts = p.promptErrorPrompts(cfg.ErrorPrompts)

	fmt.Fprintf(output, "\n=== Sanitization Rules ===\n")
	cfg.Sanitization = p.promptSanitizationRules(cfg.Sanitization)

	// Write config
	if err := writeConfig(configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(output, "\nConfiguration saved to %s\n", configPath)

	// Credentials
	fmt.Fprintf(output, "\n=== Credentials ===\n")
	if p.promptBool(fmt.Sprintf("Write SUPABASE_URL and SUPABASE_SERVICE_KEY to %s", envPath), false) {
		endpointURL := p.promptStringWithHint("SUPABASE_URL", "", "e.g. https://xyz.supabase.co")
		serviceKey := p.promptSecret("SUPABASE_SERVICE_KEY")
		if err := writeEnvFile(envPath, endpointURL, serviceKey); err != nil {
			return fmt.Errorf("failed to write env file: %w", err)
		}
		fmt.Fprintf(output, "Credentials saved to %s\n", envPath)
	}

	return nil
}

func loadExisting(configPath string) (*supamcp.ServerConfig, bool) {
	cfg := &supamcp.ServerConfig{}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, true
	}
	// Ignore unmarshal errors — start with whatever was parseable.
	_ = json.Unmarshal(data, cfg)
	return cfg, false
}

// applyDefaults sets sensible default values for a new configuration.
func applyDefaults(cfg *supamcp.ServerConfig) {
	cfg.Server.Transport = "stdio"
	cfg.Server.Port = 8080
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output = "stderr"
	cfg.Query.RequestTimeoutSeconds = 30
	cfg.Query.MaxResultLength = 100000
}

var (
	transports = []string{"stdio", "http"}
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

func writeConfig(configPath string, cfg *supamcp.ServerConfig) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Append trailing newline.
	data = append(data, '\n')

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", configPath, err)
	}

	return nil
}

// writeEnvFile writes the credentials in dotenv format. Mode 0600: the
// service-role key bypasses row level security.
func writeEnvFile(envPath, endpointURL, serviceKey string) error {
	content := fmt.Sprintf("SUPABASE_URL=%s\nSUPABASE_SERVICE_KEY=%s\n", endpointURL, serviceKey)
	return os.WriteFile(envPath, []byte(content), 0600)
}

// prompter handles reading user input and displaying prompts.
type prompter struct {
	scanner *bufio.Scanner
	output  io.Writer
	isNew   bool
}

func (p *prompter) readLine() string {
	if p.scanner.Scan() {
		return strings.TrimSpace(p.scanner.Text())
	}
	return ""
}

func (p *prompter) valueLabel() string {
	if p.isNew {
		return "default"
	}
	return "current"
}

func (p *prompter) promptStringWithHint(field string, current string, hint string) string {
	fmt.Fprintf(p.output, "%s [%s] (%s: %q): ", field, hint, p.valueLabel(), current)
	input := p.readLine()
	if input == "" {
		return current
	}
	return input
}

// promptSecret reads a value without echo when stdin is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func (p *prompter) promptSecret(field string) string {
	fmt.Fprintf(p.output, "%s (input hidden): ", field)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(p.output)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(secret))
	}
	return p.readLine()
}

func (p *prompter) promptPositiveInt(field string, current int, hint string) int {
	for {
		fmt.Fprintf(p.output, "%s [%s] (%s: %d): ", field, hint, p.valueLabel(), current)
		input := p.readLine()
		if input == "" {
			return current
		}
		val, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(p.output, "  Invalid integer %q, try again.\n", input)
			continue
		}
		if val <= 0 {
			fmt.Fprintf(p.output, "  Value must be > 0, try again.\n")
			continue
		}
		return val
	}
}

func (p *prompter) promptBool(field string, current bool) bool {
	for {
		fmt.Fprintf(p.output, "%s [true/false] (%s: %t): ", field, p.valueLabel(), current)
		input := p.readLine()
		if input == "" {
			return current
		}
		switch strings.ToLower(input) {
		case "true", "t", "yes", "y":
			return true
		case "false", "f", "no", "n":
			return false
		}
		fmt.Fprintf(p.output, "  Invalid boolean %q, try again.\n", input)
	}
}

func (p *prompter) promptEnum(field string, current string, allowed []string) string {
	hint := strings.Join(allowed, "/")
	for {
		fmt.Fprintf(p.output, "%s [%s] (%s: %q): ", field, hint, p.valueLabel(), current)
		input := p.readLine()
		if input == "" {
			return current
		}
		for _, a := range allowed {
			if input == a {
				return input
			}
		}
		fmt.Fprintf(p.output, "  Must be one of %s, try again.\n", hint)
	}
}

// promptStringList prompts for list entries one at a time; an empty line
// keeps the current list, "-" clears it.
func (p *prompter) promptStringList(field string, current []string, hint string) []string {
	fmt.Fprintf(p.output, "%s [%s] (%s: %v)\n", field, hint, p.valueLabel(), current)
	fmt.Fprintf(p.output, "  Enter values one per line, empty line to keep, \"-\" to clear:\n")
	var entries []string
	for {
		fmt.Fprintf(p.output, "  > ")
		input := p.readLine()
		if input == "" {
			if len(entries) == 0 {
				return current
			}
			return entries
		}
		if input == "-" && len(entries) == 0 {
			return nil
		}
		entries = append(entries, input)
	}
}

func (p *prompter) promptErrorPrompts(current []supamcp.ErrorPromptRule) []supamcp.ErrorPromptRule {
	fmt.Fprintf(p.output, "error_prompts (%s: %d rules)\n", p.valueLabel(), len(current))
	fmt.Fprintf(p.output, "  Enter pattern then message, empty pattern to keep, \"-\" to clear:\n")
	var rules []supamcp.ErrorPromptRule
	for {
		fmt.Fprintf(p.output, "  pattern > ")
		pattern := p.readLine()
		if pattern == "" {
			if len(rules) == 0 {
				return current
			}
			return rules
		}
		if pattern == "-" && len(rules) == 0 {
			return nil
		}
		fmt.Fprintf(p.output, "  message > ")
		message := p.readLine()
		rules = append(rules, supamcp.ErrorPromptRule{Pattern: pattern, Message: message})
	}
}

func (p *prompter) promptSanitizationRules(current []supamcp.SanitizationRule) []supamcp.SanitizationRule {
	fmt.Fprintf(p.output, "sanitization (%s: %d rules)\n", p.valueLabel(), len(current))
	fmt.Fprintf(p.output, "  Enter pattern then replacement, empty pattern to keep, \"-\" to clear:\n")
	var rules []supamcp.SanitizationRule
	for {
		fmt.Fprintf(p.output, "  pattern > ")
		pattern := p.readLine()
		if pattern == "" {
			if len(rules) == 0 {
				return current
			}
			return rules
		}
		if pattern == "-" && len(rules) == 0 {
			return nil
		}
		fmt.Fprintf(p.output, "  replacement > ")
		replacement := p.readLine()
		rules = append(rules, supamcp.SanitizationRule{Pattern: pattern, Replacement: replacement})
	}
}
