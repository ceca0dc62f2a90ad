package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/weconnect/agrisearch/internal/ingest"
	"github.com/weconnect/agrisearch/internal/log"
)

// Intermediate file names under the data directory.
const (
	listingsFile    = "listings.csv"
	detailsFile     = "details.csv"
	attachmentsFile = "attachments.csv"
	chunksFile      = "chunks.csv"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the farm-tech feed and chunk article bodies",
	Long: `Fetch walks the monthly farm-tech feed: every listing page, then each
listing's article body and attachment record. Bodies are chunked into
overlapping windows. All intermediate results are written as CSV files under
the data directory so the index step can run separately.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runFetch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := ingest.NewClient(ingest.ClientConfig{
		BaseURL:         cfg.NongsaroBaseURL,
		APIKey:          cfg.NongsaroAPIKey,
		Referer:         cfg.NongsaroReferer,
		RequestInterval: time.Duration(cfg.FetchDelayMS) * time.Millisecond,
	}, logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	ctx := cmd.Context()

	listings, err := fetchAllListings(ctx, client, cfg.FetchPageSize)
	if err != nil {
		return err
	}
	if err := writeCSV(cfg.DataDir, listingsFile, func(f *os.File) error {
		return ingest.WriteListings(f, listings)
	}); err != nil {
		return err
	}
	logger.Info("listings fetched", "count", len(listings))

	details, attachments, err := fetchBodies(ctx, client, listings, logger)
	if err != nil {
		return err
	}
	if err := writeCSV(cfg.DataDir, detailsFile, func(f *os.File) error {
		return ingest.WriteDetails(f, details)
	}); err != nil {
		return err
	}
	if err := writeCSV(cfg.DataDir, attachmentsFile, func(f *os.File) error {
		return ingest.WriteAttachments(f, attachments)
	}); err != nil {
		return err
	}

	chunks := ingest.ChunkDetails(details, ingest.ChunkOptions{})
	if err := writeCSV(cfg.DataDir, chunksFile, func(f *os.File) error {
		return ingest.WriteChunks(f, chunks)
	}); err != nil {
		return err
	}

	logger.Info("fetch complete",
		"listings", len(listings),
		"details", len(details),
		"attachments", len(attachments),
		"chunks", len(chunks))
	return nil
}

// fetchAllListings pages through the listing feed until a short page.
func fetchAllListings(ctx context.Context, client *ingest.Client, pageSize int) ([]ingest.Listing, error) {
	var all []ingest.Listing
	for page := 1; ; page++ {
		listings, err := client.List(ctx, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching listing page %d: %w", page, err)
		}
		all = append(all, listings...)
		if len(listings) < pageSize {
			return all, nil
		}
	}
}

// fetchBodies fetches each listing's detail and attachment record. Listings
// without a detail are skipped; a missing attachment record is not an error.
func fetchBodies(ctx context.Context, client *ingest.Client, listings []ingest.Listing, logger log.Logger) ([]ingest.Detail, []ingest.Attachment, error) {
	details := make([]ingest.Detail, 0, len(listings))
	attachments := make([]ingest.Attachment, 0, len(listings))

	for _, l := range listings {
		detail, err := client.Detail(ctx, l.CurationNo, l.Title)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching detail %q: %w", l.CurationNo, err)
		}
		if detail == nil {
			logger.Warn("listing has no detail", "curationNo", l.CurationNo)
			continue
		}
		details = append(details, *detail)

		attach, err := client.AttachInfo(ctx, l.CurationNo)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching attachment %q: %w", l.CurationNo, err)
		}
		if attach != nil {
			attachments = append(attachments, *attach)
		}
	}

	return details, attachments, nil
}

// writeCSV writes one intermediate file atomically enough for a batch job:
// create, write, close, report the first error.
func writeCSV(dir, name string, write func(*os.File) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}
