package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	supamcp "github.com/jcernauske/supabase-mcp-server"
)

func runServe() error {
	ctx := context.Background()

	// 1. Load environment variables from .env file, if present
	_ = godotenv.Load()

	// 2. Resolve credentials — their absence is a fatal startup error,
	// never a per-call error
	endpointURL := os.Getenv("SUPABASE_URL")
	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if endpointURL == "" || serviceKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set in environment variables")
	}

	// 3. Load ServerConfig
	serverConfig, err := loadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 4. Setup logger
	logger := setupLogger(serverConfig.Logging)

	// 5. Create SupabaseMcp instance
	s, err := supamcp.New(endpointURL, serviceKey, serverConfig.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to create SupabaseMcp: %w", err)
	}

	// 6. Test backend connection
	logger.Info().Msg("testing Supabase connection")
	if err := s.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Supabase connection test failed")
		return fmt.Errorf("Supabase connection test failed: %w", err)
	}
	logger.Info().Msg("Supabase connection test successful")

	// 7. Create MCP server with initialize lifecycle logging
	hooks := &server.Hooks{}
	hooks.AddAfterInitialize(func(ctx context.Context, id any, req *mcp.InitializeRequest, result *mcp.InitializeResult) {
		logger.Info().
			Str("client_name", req.Params.ClientInfo.Name).
			Str("client_version", req.Params.ClientInfo.Version).
			Msg("AI agent connected (MCP initialize)")
	})

	mcpServer := server.NewMCPServer("supamcp", version,
		server.WithToolCapabilities(true),
		server.WithHooks(hooks),
	)

	supamcp.RegisterMCPTools(mcpServer, s)

	// 8. Serve on the configured transport
	switch serverConfig.Server.Transport {
	case "", "stdio":
		logger.Info().Msg("starting supamcp server on stdio")
		return server.ServeStdio(mcpServer)
	case "http":
		return serveHTTP(mcpServer, serverConfig, logger)
	default:
		return fmt.Errorf("unknown server.transport %q (expected stdio or http)", serverConfig.Server.Transport)
	}
}

func serveHTTP(mcpServer *server.MCPServer, serverConfig *supamcp.ServerConfig, logger zerolog.Logger) error {
	if serverConfig.Server.Port <= 0 {
		panic("supamcp: server.port must be > 0 for http transport")
	}

	addr := fmt.Sprintf(":%d", serverConfig.Server.Port)
	mux := http.NewServeMux()

	// Health check endpoint (process liveness only, not backend connectivity)
	if serverConfig.Server.HealthCheckEnabled {
		if serverConfig.Server.HealthCheckPath == "" {
			panic("supamcp: health_check_path must be set when health_check_enabled is true")
		}
		mux.HandleFunc(serverConfig.Server.HealthCheckPath, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
	}

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Create StreamableHTTPServer with custom http.Server
	streamableServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
		server.WithStreamableHTTPServer(httpSrv),
	)

	// Manually register the MCP handler — Start() does NOT register
	// when a custom *http.Server is provided via WithStreamableHTTPServer.
	mux.Handle("/mcp", streamableServer)

	logger.Info().Int("port", serverConfig.Server.Port).Msg("starting supamcp server")
	return streamableServer.Start(addr)
}

// loadServerConfig reads the JSON config file. A missing file is not an
// error — the server runs with defaults and env-supplied credentials.
func loadServerConfig() (*supamcp.ServerConfig, error) {
	configPath := os.Getenv("SUPAMCP_CONFIG_PATH")
	if configPath == "" {
		configPath = ".supamcp/config.json"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && os.Getenv("SUPAMCP_CONFIG_PATH") == "" {
			return &supamcp.ServerConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config supamcp.ServerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func setupLogger(config supamcp.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(config.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var output io.Writer = os.Stderr
	if config.Output == "stdout" {
		output = os.Stdout
	} else if config.Output != "" && config.Output != "stderr" {
		f, err := os.OpenFile(config.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			output = f
		}
	}

	if config.Format == "text" {
		output = zerolog.ConsoleWriter{Out: output}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
