package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/corpuslabs/ragstore/infrastructure/api"
	v1 "github.com/corpuslabs/ragstore/infrastructure/api/v1"
	"github.com/corpuslabs/ragstore/internal/config"
	mcpinternal "github.com/corpuslabs/ragstore/internal/mcp"
)

func serveCmd() *cobra.Command {
	var (
		envFile   string
		host      string
		port      int
		storePath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP search server",
		Long: `Start the HTTP server exposing search over a previously built store.

Endpoints:
  GET /api/v1/search?q=...&k=...&threshold=...
  POST /mcp (Model Context Protocol over streamable HTTP)
  GET /healthz

Configuration is loaded in the following order (later sources override
earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables (RAGSTORE_HOST, RAGSTORE_PORT, RAGSTORE_STORE_PATH,
     RAGSTORE_EMBEDDING_ENDPOINT_*, ...)
  4. Command line flags`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(envFile, host, port, storePath)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on")
	cmd.Flags().StringVar(&storePath, "store", "", "Store directory to serve")

	return cmd
}

func runServe(envFile, host string, port int, storePath string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	if storePath != "" {
		opts = append(opts, config.WithStorePath(storePath))
	}
	cfg = cfg.Apply(opts...)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	logger := client.Logger()

	srv := api.NewServer(cfg.Addr(), logger)

	searchRouter := v1.NewSearchRouter(client.Search, cfg.StorePath(), cfg.SearchK(), logger)
	srv.Router().Mount("/api/v1/search", searchRouter.Routes())

	mcpSrv := mcpinternal.NewServer(client.Search, cfg.StorePath(), cfg.SearchK(), logger)
	srv.Router().Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	logger.Info("starting ragstore server",
		"version", version,
		"addr", cfg.Addr(),
		"store", cfg.StorePath(),
		"model", cfg.Embedding().Model(),
	)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
