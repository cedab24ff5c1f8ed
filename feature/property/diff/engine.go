package diff

import (
	"context"
	"fmt"

	"renting-scraper/feature/property/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine reconciles observed batches against the persisted snapshot.
// It only reads from the store; persisting the produced diffs is the
// property.Persister's job.
type Engine struct {
	store  Store
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// classification is the outcome for one observation. A nil diff with an
// empty touchedID means the item failed; a nil diff with a touchedID
// means a suppressed no-op update (its ID still counts as touched for
// removal detection).
type classification struct {
	diff      *Diff
	touchedID string
	failure   *ItemFailure
}

// Generate runs one reconciliation pass over the observed batch.
//
// Classification runs concurrently but the output is deterministic:
// surviving new/changed diffs appear in batch order, deleted diffs
// follow. A single item's lookup failure is recorded and skipped, but
// it also disables removal detection for the run: the failed item's row
// cannot be excluded, so the deletion step would tombstone a listing
// that was in fact observed. The only fatal error is a failing
// removal-detection query, since silently returning "nothing deleted"
// would hide that removals went unchecked.
func (e *Engine) Generate(ctx context.Context, observed []models.ObservedProperty, opts Options) (*Result, error) {
	observed = dedupe(observed)

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	// Classify every observation independently; slots keep batch order.
	slots := make([]classification, len(observed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, obs := range observed {
		i, obs := i, obs
		g.Go(func() error {
			slots[i] = e.classify(gctx, obs)
			return nil
		})
	}
	// Goroutines never return errors; per-item failures live in the slots.
	_ = g.Wait()

	result := &Result{Summary: Summary{Observed: len(observed)}}

	// Collect touched IDs from every changed classification, suppressed
	// no-ops included: a no-op row was still observed, so it must never
	// be a removal candidate.
	var touchedIDs []string
	for _, slot := range slots {
		if slot.failure != nil {
			result.Failures = append(result.Failures, *slot.failure)
			result.Summary.Failed++
			continue
		}
		if slot.touchedID != "" {
			touchedIDs = append(touchedIDs, slot.touchedID)
		}
		if slot.diff == nil {
			if slot.touchedID != "" {
				result.Summary.Suppressed++
			}
			continue
		}

		result.Diffs = append(result.Diffs, *slot.diff)
		switch slot.diff.Type {
		case TypeNew:
			result.Summary.New++
		case TypeChanged:
			result.Summary.Changed++
			if slot.diff.Relisted {
				result.Summary.Relisted++
			}
		}
	}

	if opts.DetectRemovals {
		// A failed lookup keeps its row out of touchedIDs, so the exclusion
		// query would report an actively observed listing as removed. Any
		// failure therefore downgrades the run to a partial one.
		if len(result.Failures) > 0 {
			result.Summary.RemovalsSkipped = true
			e.logger.Warn("Skipping removal detection, batch had lookup failures",
				zap.Int("failed", result.Summary.Failed),
			)
			return result, nil
		}

		removed, err := e.store.FindActiveExcluding(ctx, touchedIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to detect removals: %w", err)
		}
		for _, entity := range removed {
			result.Diffs = append(result.Diffs, Diff{Type: TypeDeleted, Entity: entity})
			result.Summary.Deleted++
		}
	}

	return result, nil
}

// classify resolves one observation against the store.
func (e *Engine) classify(ctx context.Context, obs models.ObservedProperty) classification {
	persisted, err := e.store.FindByKey(ctx, obs.Source, obs.ExternalID)
	if err != nil {
		e.logger.Warn("Skipping observed listing, lookup failed",
			zap.String("source", string(obs.Source)),
			zap.String("external_id", obs.ExternalID),
			zap.Error(err),
		)
		return classification{failure: &ItemFailure{Key: obs.Key(), Err: err}}
	}

	if persisted == nil {
		return classification{diff: &Diff{Type: TypeNew, Entity: obs.ToEntity()}}
	}

	changes := Compute(obs, *persisted)
	relisted := persisted.Delisted()
	if len(changes) == 0 && !relisted {
		// No-op update: drop the diff, keep the row marked as touched.
		return classification{touchedID: persisted.ID}
	}

	return classification{
		diff: &Diff{
			Type:     TypeChanged,
			Entity:   *persisted,
			Changes:  changes,
			Relisted: relisted,
		},
		touchedID: persisted.ID,
	}
}

// dedupe resolves duplicate natural keys within one batch:
// last observation wins, first sighting keeps the position.
func dedupe(observed []models.ObservedProperty) []models.ObservedProperty {
	seen := make(map[models.PropertyKey]int, len(observed))
	out := make([]models.ObservedProperty, 0, len(observed))
	for _, obs := range observed {
		if i, ok := seen[obs.Key()]; ok {
			out[i] = obs
			continue
		}
		seen[obs.Key()] = len(out)
		out = append(out, obs)
	}
	return out
}
