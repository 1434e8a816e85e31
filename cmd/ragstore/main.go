// Package main is the entry point for the ragstore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corpuslabs/ragstore"
	"github.com/corpuslabs/ragstore/internal/config"
	"github.com/corpuslabs/ragstore/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ragstore",
		Short: "Local semantic search over a document corpus",
		Long: `Ragstore indexes a directory of documents into a local vector store
and answers semantic search queries against it, using any
OpenAI-compatible embedding endpoint (Ollama, OpenAI, vLLM).`,
	}

	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(searchCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(mcpCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newClient configures logging and builds a ragstore client from cfg.
func newClient(cfg config.AppConfig) (*ragstore.Client, error) {
	logger := log.Configure(cfg)
	return ragstore.New(
		ragstore.WithConfig(cfg),
		ragstore.WithLogger(logger),
	)
}
