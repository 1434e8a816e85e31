package main

import (
	"github.com/spf13/cobra"

	"github.com/corpuslabs/ragstore/internal/config"
	mcpinternal "github.com/corpuslabs/ragstore/internal/mcp"
)

func mcpCmd() *cobra.Command {
	var (
		envFile   string
		storePath string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Long: `Start the Model Context Protocol server on stdin/stdout, exposing
the search tool to AI assistants. Logs go to stderr so the protocol
stream stays clean.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if storePath != "" {
				cfg = cfg.Apply(config.WithStorePath(storePath))
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			client.Logger().Info("starting MCP server",
				"version", version,
				"store", cfg.StorePath(),
			)

			srv := mcpinternal.NewServer(client.Search, cfg.StorePath(), cfg.SearchK(), client.Logger())
			return srv.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&storePath, "store", "", "Store directory to serve")

	return cmd
}
