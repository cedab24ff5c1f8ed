// Package diff is the reconciliation engine: it compares a batch of
// freshly observed listings against the persisted snapshot and produces
// a minimal, typed change set.
//
// # Classification
//
// Each observation is looked up by its natural key (source, externalId),
// tombstoned rows included:
//
//   - No row exists: the observation becomes a "new" diff carrying a
//     candidate entity (identity assigned later by the store).
//   - A row exists: the attributes are compared field by field and the
//     observation becomes a "changed" diff. Relisted is set when the row
//     was tombstoned at comparison time. No-op updates (empty change map,
//     not relisted) are suppressed.
//
// # Removal detection
//
// When the run is declared complete, every active row whose ID was not
// touched by a "changed" classification becomes a "deleted" diff. For a
// partial run (a producer failed) the step is skipped entirely, so absence
// from the batch is never mistaken for real-world removal.
//
// # Concurrency
//
// Per-item classification is read-only and fans out over a bounded
// errgroup. Results are slotted by input position, so the diff set is
// deterministic regardless of interleaving. A single item's lookup
// failure never aborts the batch; it is recorded on the result instead.
//
// # Usage
//
//	engine := diff.NewEngine(store, logg)
//	result, err := engine.Generate(ctx, observed, diff.Options{
//	    DetectRemovals: batch.Complete,
//	})
package diff
