package scraper

// Config holds configuration for producers and the reconciliation run.
type Config struct {
	// FeedDir is the directory holding one <source>.json feed per portal.
	FeedDir string `mapstructure:"feed_dir" default:"./feeds"`
	// Concurrency bounds concurrent store lookups during classification.
	Concurrency int `mapstructure:"concurrency" default:"8"`
	// ArchiveReports enables uploading run reports to object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
}
