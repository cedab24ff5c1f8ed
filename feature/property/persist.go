package property

import (
	"context"
	"fmt"

	"renting-scraper/feature/property/diff"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Persister applies a diff set to the store, one call-set per diff.
//
// Diffs are isolated: a failure is collected and the remaining diffs
// still apply, so a single bad row never blocks the run. The returned
// error aggregates every per-diff failure.
type Persister struct {
	store  *Store
	logger *zap.Logger
}

// NewPersister creates a diff persister.
func NewPersister(store *Store, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{store: store, logger: logger}
}

// Apply persists every diff in the set and returns the aggregated
// failures, nil when all diffs applied.
func (p *Persister) Apply(ctx context.Context, diffs []diff.Diff) error {
	var errs error
	for _, d := range diffs {
		if err := p.applyOne(ctx, d); err != nil {
			p.logger.Error("Failed to persist diff",
				zap.String("type", string(d.Type)),
				zap.String("source", string(d.Entity.Source)),
				zap.String("external_id", d.Entity.ExternalID),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (p *Persister) applyOne(ctx context.Context, d diff.Diff) error {
	switch d.Type {
	case diff.TypeNew:
		entity := d.Entity
		return p.store.Insert(ctx, &entity)

	case diff.TypeChanged:
		// A relisted row is restored before its attributes are updated;
		// the order matters for that entity, nothing else does.
		if d.Relisted {
			if err := p.store.Restore(ctx, d.Entity.ID); err != nil {
				return err
			}
		}
		return p.store.UpdateFields(ctx, d.Entity.ID, d.Changes.ColumnUpdates())

	case diff.TypeDeleted:
		return p.store.SoftDelete(ctx, d.Entity.ID)

	default:
		return fmt.Errorf("unknown diff type %q", d.Type)
	}
}
