package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"renting-scraper/feature/property/models"
)

// FeedProducer reads observed listings from a local JSON feed file, one
// array of snapshots per source. It stands in for the browser-driven
// portal scrapers, which live outside this repository.
type FeedProducer struct {
	source models.Source
	path   string
}

// NewFeedProducer creates a producer for one source's feed file.
func NewFeedProducer(source models.Source, path string) *FeedProducer {
	return &FeedProducer{source: source, path: path}
}

// Name identifies the producer in logs.
func (p *FeedProducer) Name() string {
	return fmt.Sprintf("feed:%s", p.source)
}

// Scrape decodes the feed file. Every snapshot is stamped with the
// producer's source; entries carrying a different source are rejected
// so one feed can never pollute another source's keyspace.
func (p *FeedProducer) Scrape(ctx context.Context) ([]models.ObservedProperty, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", p.path, err)
	}

	var observed []models.ObservedProperty
	if err := json.Unmarshal(data, &observed); err != nil {
		return nil, fmt.Errorf("failed to decode feed %s: %w", p.path, err)
	}

	for i := range observed {
		if observed[i].Source == "" {
			observed[i].Source = p.source
			continue
		}
		if observed[i].Source != p.source {
			return nil, fmt.Errorf("feed %s contains listing for source %s", p.path, observed[i].Source)
		}
	}
	return observed, nil
}
