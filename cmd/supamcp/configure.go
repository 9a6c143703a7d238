package main

import (
	"flag"
	"os"

	"github.com/jcernauske/supabase-mcp-server/internal/configure"
)

func runConfigure() error {
	fs := flag.NewFlagSet("configure", flag.ExitOnError)
	configPath := fs.String("config", ".supamcp/config.json", "Path to configuration file")
	envPath := fs.String("env", ".env", "Path to credentials env file")
	fs.Parse(os.Args[2:])

	printBanner(os.Stderr, isTTY(os.Stderr.Fd()))
	return configure.Run(*configPath, *envPath)
}
