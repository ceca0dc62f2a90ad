package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weconnect/agrisearch/internal/ingest"
	"github.com/weconnect/agrisearch/internal/vectorstore"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed fetched chunks and write them to the vector collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIndex(cmd)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	chunks, err := ingest.ReadChunksFile(filepath.Join(cfg.DataDir, chunksFile))
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks in %s, run fetch first", cfg.DataDir)
	}

	attachments, err := ingest.ReadAttachmentsFile(filepath.Join(cfg.DataDir, attachmentsFile))
	if err != nil {
		return err
	}

	client, err := newOpenAIClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating OpenAI client: %w", err)
	}

	store, err := vectorstore.Create(cfg.StorePath, cfg.Collection, logger)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}

	indexer := ingest.NewIndexer(client, store, logger)
	written, err := indexer.Run(cmd.Context(), chunks, attachments)
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	logger.Info("index complete", "written", written, "collection", cfg.Collection)
	return nil
}
