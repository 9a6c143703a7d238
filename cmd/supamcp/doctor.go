package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"

	"github.com/joho/godotenv"

	supamcp "github.com/jcernauske/supabase-mcp-server"
)

func runDoctor() error {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	configPath := fs.String("config", ".supamcp/config.json", "Path to configuration file")
	fs.Parse(os.Args[2:])

	_ = godotenv.Load()

	useColor := isTTY(os.Stderr.Fd())
	return doctor(os.Stderr, useColor, *configPath)
}

func doctor(w io.Writer, useColor bool, configPath string) error {
	printBanner(w, useColor)
	fmt.Fprintf(w, "supamcp %s\n\n", version)

	config, configOK := doctorValidateConfig(w, useColor, configPath)
	envOK := doctorValidateEnv(w, useColor)

	if !configOK || !envOK {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Fix the issues above and run 'supamcp doctor' again.")
		return nil
	}

	// Print agent connection snippets
	fmt.Fprintln(w)
	printAgentSnippets(w, useColor, config)
	return nil
}

// doctorValidateEnv checks the required environment variables, printing
// check results.
func doctorValidateEnv(w io.Writer, useColor bool) bool {
	allPassed := true

	endpointURL := os.Getenv("SUPABASE_URL")
	if endpointURL == "" {
		printCheck(w, useColor, false, "SUPABASE_URL is set")
		allPassed = false
	} else if _, err := url.Parse(endpointURL); err != nil {
		printCheck(w, useColor, false, fmt.Sprintf("SUPABASE_URL is a valid URL: %v", err))
		allPassed = false
	} else {
		printCheck(w, useColor, true, fmt.Sprintf("SUPABASE_URL is set (%s)", endpointURL))
	}

	if os.Getenv("SUPABASE_SERVICE_KEY") == "" {
		printCheck(w, useColor, false, "SUPABASE_SERVICE_KEY is set")
		allPassed = false
	} else {
		printCheck(w, useColor, true, "SUPABASE_SERVICE_KEY is set (value hidden)")
	}

	return allPassed
}

// doctorValidateConfig loads and validates the config file, printing check
// results. Returns the parsed config and true if all checks passed. A
// missing config file passes with defaults.
func doctorValidateConfig(w io.Writer, useColor bool, configPath string) (*supamcp.ServerConfig, bool) {
	allPassed := true

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			printCheck(w, useColor, true, fmt.Sprintf("Config file absent, using defaults (%s)", configPath))
			return &supamcp.ServerConfig{}, true
		}
		printCheck(w, useColor, false, fmt.Sprintf("Config file readable (%s)", configPath))
		return nil, false
	}
	printCheck(w, useColor, true, fmt.Sprintf("Config file readable (%s)", configPath))

	var config supamcp.ServerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		printCheck(w, useColor, false, fmt.Sprintf("Config file is valid JSON: %v", err))
		return nil, false
	}
	printCheck(w, useColor, true, "Config file is valid JSON")

	// Transport checks
	switch config.Server.Transport {
	case "", "stdio":
		printCheck(w, useColor, true, "server.transport is stdio")
	case "http":
		if config.Server.Port <= 0 {
			printCheck(w, useColor, false, "server.port is > 0 (required for http transport)")
			allPassed = false
		} else {
			printCheck(w, useColor, true, fmt.Sprintf("server.port is > 0 (%d)", config.Server.Port))
		}
		if config.Server.HealthCheckEnabled && config.Server.HealthCheckPath == "" {
			printCheck(w, useColor, false, "health_check_path is set (required when health_check_enabled)")
			allPassed = false
		}
	default:
		printCheck(w, useColor, false, fmt.Sprintf("server.transport is stdio or http (got %q)", config.Server.Transport))
		allPassed = false
	}

	// Regex patterns compile
	regexOK := true

	for i, rule := range config.ErrorPrompts {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			printCheck(w, useColor, false, fmt.Sprintf("error_prompts[%d] regex compiles: %v", i, err))
			regexOK = false
			allPassed = false
		}
	}

	for i, rule := range config.Sanitization {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			printCheck(w, useColor, false, fmt.Sprintf("sanitization[%d] regex compiles: %v", i, err))
			regexOK = false
			allPassed = false
		}
	}

	for i, pattern := range config.Access.AllowTables {
		if _, err := regexp.Compile(pattern); err != nil {
			printCheck(w, useColor, false, fmt.Sprintf("access.allow_tables[%d] regex compiles: %v", i, err))
			regexOK = false
			allPassed = false
		}
	}

	for i, pattern := range config.Access.DenyTables {
		if _, err := regexp.Compile(pattern); err != nil {
			printCheck(w, useColor, false, fmt.Sprintf("access.deny_tables[%d] regex compiles: %v", i, err))
			regexOK = false
			allPassed = false
		}
	}

	if regexOK {
		printCheck(w, useColor, true, "All regex patterns compile")
	}

	return &config, allPassed
}

// printCheck prints a colored ✓ or ✗ check line.
func printCheck(w io.Writer, useColor bool, pass bool, msg string) {
	if pass {
		if useColor {
			fmt.Fprintf(w, "  \033[32m✓\033[0m %s\n", msg)
		} else {
			fmt.Fprintf(w, "  ✓ %s\n", msg)
		}
	} else {
		if useColor {
			fmt.Fprintf(w, "  \033[31m✗\033[0m %s\n", msg)
		} else {
			fmt.Fprintf(w, "  ✗ %s\n", msg)
		}
	}
}

// printAgentSnippets prints MCP connection config snippets for AI agents.
func printAgentSnippets(w io.Writer, useColor bool, config *supamcp.ServerConfig) {
	heading := func(title string) {
		if useColor {
			fmt.Fprintf(w, "\033[1;36m%s\033[0m\n", title)
		} else {
			fmt.Fprintln(w, title)
		}
	}

	subheading := func(title string) {
		if useColor {
			fmt.Fprintf(w, "  \033[1m%s\033[0m\n", title)
		} else {
			fmt.Fprintf(w, "  %s\n", title)
		}
	}

	heading("Agent Connection Snippets")
	fmt.Fprintln(w)

	if config.Server.Transport == "http" {
		mcpURL := fmt.Sprintf("http://localhost:%d/mcp", config.Server.Port)

		subheading("Claude Code")
		fmt.Fprintf(w, "  Run this command to add the server:\n\n")
		fmt.Fprintf(w, "    claude mcp add --transport http supabase %s\n\n", mcpURL)
		fmt.Fprintf(w, "  Or add to .mcp.json (project scope):\n\n")
		fmt.Fprintf(w, `  {
    "mcpServers": {
      "supabase": {
        "type": "http",
        "url": "%s"
      }
    }
  }
`, mcpURL)
		fmt.Fprintln(w)
		return
	}

	subheading("Claude Code")
	fmt.Fprintf(w, "  Run this command to add the server:\n\n")
	fmt.Fprintf(w, "    claude mcp add supabase -- supamcp serve\n\n")
	fmt.Fprintf(w, "  Or add to .mcp.json (project scope):\n\n")
	fmt.Fprintf(w, `  {
    "mcpServers": {
      "supabase": {
        "command": "supamcp",
        "args": ["serve"],
        "env": {
          "SUPABASE_URL": "https://your-project.supabase.co",
          "SUPABASE_SERVICE_KEY": "your-service-role-key"
        }
      }
    }
  }
`)
	fmt.Fprintln(w)
}
