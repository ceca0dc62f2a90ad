package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weconnect/agrisearch/internal/api"
	"github.com/weconnect/agrisearch/internal/history"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, store, err := newRAGService(cfg, logger)
	if err != nil {
		return err
	}

	suggester, err := newSuggestService(cfg, logger)
	if err != nil {
		return err
	}

	server := api.NewServer(api.ServerConfig{
		Addr:          cfg.ServerAddr,
		RatePerSecond: cfg.RatePerSecond,
		RateBurst:     cfg.RateBurst,
	}, svc, suggester, history.NewStore(cfg.HistoryLimit), store, logger)

	logger.Info("HTTP server ready",
		"addr", cfg.ServerAddr,
		"collection", cfg.Collection,
		"documents", store.Count(),
	)

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}
