package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corpuslabs/ragstore/domain/search"
	"github.com/corpuslabs/ragstore/internal/config"
)

func searchCmd() *cobra.Command {
	var (
		envFile   string
		storePath string
		topK      int
		threshold float64
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Query a store for the most similar chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			var opts []config.AppConfigOption
			if storePath != "" {
				opts = append(opts, config.WithStorePath(storePath))
			}
			if topK > 0 {
				opts = append(opts, config.WithSearchK(topK))
			}
			cfg = cfg.Apply(opts...)

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			query := search.NewQuery(strings.Join(args, " "), cfg.SearchK())
			if cmd.Flags().Changed("threshold") {
				query = query.WithThreshold(threshold)
			}

			results, err := client.Query(cmd.Context(), query)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(results)
			}
			printResults(query.Text(), results)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&storePath, "store", "", "Store directory to query")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of results to return")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity score; results below it are dropped")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}

func printJSON(results []search.Result) error {
	type row struct {
		Score       float64 `json:"score"`
		SourcePath  string  `json:"source_path"`
		ChunkIndex  int     `json:"chunk_index"`
		OffsetStart int     `json:"offset_start"`
		OffsetEnd   int     `json:"offset_end"`
		Text        string  `json:"text"`
	}

	rows := make([]row, len(results))
	for i, r := range results {
		rows[i] = row{
			Score:       r.Score(),
			SourcePath:  r.SourcePath(),
			ChunkIndex:  r.ChunkIndex(),
			OffsetStart: r.Start(),
			OffsetEnd:   r.End(),
			Text:        r.Text(),
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func printResults(query string, results []search.Result) {
	if len(results) == 0 {
		fmt.Printf("no results for %q\n", query)
		return
	}

	for i, r := range results {
		fmt.Printf("%d. %s#%d [%d:%d] score=%.4f\n",
			i+1, r.SourcePath(), r.ChunkIndex(), r.Start(), r.End(), r.Score())
		fmt.Printf("   %s\n", preview(r.Text(), 200))
	}
}

// preview flattens whitespace and truncates text for terminal display.
func preview(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit]) + "..."
}
