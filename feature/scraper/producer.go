package scraper

import (
	"context"

	"renting-scraper/feature/property/models"

	"go.uber.org/zap"
)

// Producer yields fresh listing snapshots for one source.
//
// Scrape may fail partway; the snapshots it already returned stay
// valid. Navigation, retries and parsing are the producer's own
// business — the engine only ever sees the observed batch.
type Producer interface {
	// Name identifies the producer in logs.
	Name() string

	// Scrape returns the observed listings. A non-nil error marks the
	// yield as partial.
	Scrape(ctx context.Context) ([]models.ObservedProperty, error)
}

// Batch is the combined yield of a run across all producers.
type Batch struct {
	// Observed is the concatenation of every producer's yield,
	// partial yields included.
	Observed []models.ObservedProperty

	// Complete is true only when every producer succeeded. An
	// incomplete batch must never drive removal detection: absence
	// caused by a failed producer is not real-world removal.
	Complete bool
}

// Collect runs every producer in order and assembles the batch.
// Producer failures are logged, never propagated; they only clear the
// completeness flag.
func Collect(ctx context.Context, logger *zap.Logger, producers ...Producer) Batch {
	if logger == nil {
		logger = zap.NewNop()
	}

	batch := Batch{Complete: true}
	for _, p := range producers {
		observed, err := p.Scrape(ctx)
		batch.Observed = append(batch.Observed, observed...)
		if err != nil {
			batch.Complete = false
			logger.Warn("Producer failed, treating run as partial",
				zap.String("producer", p.Name()),
				zap.Int("yielded", len(observed)),
				zap.Error(err),
			)
			continue
		}
		logger.Info("Producer finished",
			zap.String("producer", p.Name()),
			zap.Int("yielded", len(observed)),
		)
	}
	return batch
}
