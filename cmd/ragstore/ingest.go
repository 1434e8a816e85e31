package main

import (
	"github.com/spf13/cobra"

	"github.com/corpuslabs/ragstore/internal/config"
)

func ingestCmd() *cobra.Command {
	var (
		envFile      string
		corpusPath   string
		storePath    string
		chunkSize    int
		chunkOverlap int
		extensions   []string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index a corpus directory into a store",
		Long: `Read every matching file under the corpus directory, cut the text
into overlapping chunks, embed them, and write the vector store. The
store is rebuilt wholesale; the previous store stays intact until the
new one is complete.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			cfg = applyIngestOverrides(cfg, corpusPath, storePath, chunkSize, chunkOverlap, extensions)

			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			client.Logger().Info("starting ingest",
				"version", version,
				"corpus", cfg.CorpusPath(),
				"store", cfg.StorePath(),
				"model", cfg.Embedding().Model(),
			)
			return client.IngestCorpus(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Corpus directory to index")
	cmd.Flags().StringVar(&storePath, "store", "", "Store directory to write")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Chunk window size in characters")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", -1, "Chunk window overlap in characters")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to index (e.g. .md,.txt)")

	return cmd
}

func applyIngestOverrides(cfg config.AppConfig, corpusPath, storePath string, chunkSize, chunkOverlap int, extensions []string) config.AppConfig {
	var opts []config.AppConfigOption

	if corpusPath != "" {
		opts = append(opts, config.WithCorpusPath(corpusPath))
	}
	if storePath != "" {
		opts = append(opts, config.WithStorePath(storePath))
	}
	if chunkSize > 0 {
		opts = append(opts, config.WithChunkSize(chunkSize))
	}
	if chunkOverlap >= 0 {
		opts = append(opts, config.WithChunkOverlap(chunkOverlap))
	}
	if len(extensions) > 0 {
		opts = append(opts, config.WithExtensions(extensions))
	}

	return cfg.Apply(opts...)
}
