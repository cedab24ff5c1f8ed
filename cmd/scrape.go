package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"renting-scraper/core/config"
	"renting-scraper/core/database"
	"renting-scraper/core/logger"
	"renting-scraper/core/storage"
	"renting-scraper/feature/notify"
	"renting-scraper/feature/property"
	"renting-scraper/feature/property/diff"
	"renting-scraper/feature/property/models"
	"renting-scraper/feature/report"
	"renting-scraper/feature/scraper"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the scrape command
	noRemovals bool
	dryRunDiff bool
	noMail     bool
)

// scrapeCmd runs one full reconciliation: collect the observed batch,
// diff it against the snapshot, persist and notify.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one crawl and reconcile it against the stored snapshot",
	Long: `Collect fresh listings from every configured producer, compare them with
the stored snapshot and apply the resulting diff set: insert new
listings, update changed ones (restoring relisted rows first) and
tombstone the ones that disappeared.

Removal detection only runs when every producer succeeded; a partial
crawl must never tombstone listings the failed producer simply missed.

Examples:
  # Full run (persist + mail if configured)
  renting-scraper scrape

  # Compute and report the diff set without touching the store
  renting-scraper scrape --dry-run

  # Treat the crawl as partial even if all producers succeed
  renting-scraper scrape --no-removals`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&noRemovals, "no-removals", false, "Skip removal detection (treat the crawl as partial)")
	scrapeCmd.Flags().BoolVar(&dryRunDiff, "dry-run", false, "Compute the diff set but do not persist or notify")
	scrapeCmd.Flags().BoolVar(&noMail, "no-mail", false, "Skip the notification mail")

	RootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	l.Info("Starting reconciliation run")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.PropertyEntity{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Collect the observed batch from every configured feed.
	producers := []scraper.Producer{
		scraper.NewFeedProducer(models.SourceImovirtual, filepath.Join(cfg.Scrape.FeedDir, "imovirtual.json")),
		scraper.NewFeedProducer(models.SourceIdealista, filepath.Join(cfg.Scrape.FeedDir, "idealista.json")),
	}
	batch := scraper.Collect(ctx, l, producers...)

	detectRemovals := batch.Complete && !noRemovals
	if !detectRemovals {
		l.Warn("Removal detection disabled for this run",
			zap.Bool("batch_complete", batch.Complete),
			zap.Bool("forced_off", noRemovals),
		)
	}

	store := property.NewStore(db)
	engine := diff.NewEngine(store, l)
	result, err := engine.Generate(ctx, batch.Observed, diff.Options{
		DetectRemovals: detectRemovals,
		Concurrency:    cfg.Scrape.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to generate diff set: %w", err)
	}

	printRunSummary(l, result)

	if dryRunDiff {
		l.Info("Dry-run mode: no changes were made.")
		return nil
	}

	// Persist diffs. Failures are isolated per diff; report and carry on.
	if err := property.NewPersister(store, l).Apply(ctx, result.Diffs); err != nil {
		l.Error("Some diffs failed to persist", zap.Error(err))
	}

	if cfg.Mail.Enabled && !noMail {
		if err := notify.NewMailer(cfg.Mail).Send(result.Diffs); err != nil {
			l.Error("Failed to send notification mail", zap.Error(err))
		}
	}

	if cfg.Scrape.ArchiveReports {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			l.Error("Failed to create storage client, skipping report archive", zap.Error(err))
			return nil
		}
		object, err := report.Upload(ctx, client, cfg.Storage.Bucket, result)
		if err != nil {
			l.Error("Failed to archive run report", zap.Error(err))
			return nil
		}
		l.Info("Archived run report", zap.String("object", object))
	}

	return nil
}

// printRunSummary logs the aggregate outcome of a run.
func printRunSummary(l *zap.Logger, result *diff.Result) {
	s := result.Summary

	l.Info("Reconciliation summary",
		zap.Int("observed", s.Observed),
		zap.Int("new", s.New),
		zap.Int("changed", s.Changed),
		zap.Int("relisted", s.Relisted),
		zap.Int("deleted", s.Deleted),
		zap.Int("suppressed", s.Suppressed),
		zap.Int("failed", s.Failed),
	)

	if s.RemovalsSkipped {
		l.Warn("Removal detection was skipped: the run had lookup failures")
	}

	for _, f := range result.Failures {
		l.Warn("Observation skipped",
			zap.String("source", string(f.Key.Source)),
			zap.String("external_id", f.Key.ExternalID),
			zap.Error(f.Err),
		)
	}
}
