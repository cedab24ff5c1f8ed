package diff

import (
	"context"

	"renting-scraper/feature/property/models"
)

// Type tags the kind of a diff.
type Type string

const (
	// TypeNew marks a listing unseen by the store, tombstones included.
	TypeNew Type = "new"
	// TypeChanged marks a listing whose persisted counterpart exists.
	TypeChanged Type = "changed"
	// TypeDeleted marks an active listing absent from a complete batch.
	TypeDeleted Type = "deleted"
)

// Diff is one typed statement about how a listing changed between runs.
//
// Entity is an immutable snapshot: for "changed" and "deleted" it is the
// persisted row as it was at comparison time, for "new" it is the
// candidate built from the observation (ID still empty).
type Diff struct {
	Type   Type                  `json:"type"`
	Entity models.PropertyEntity `json:"entity"`

	// Changes holds the per-attribute old/new pairs. Only set for
	// "changed" diffs; empty for a pure relisting.
	Changes models.Changes `json:"changes,omitempty"`

	// Relisted is true when the persisted counterpart was tombstoned at
	// comparison time. Only meaningful for "changed" diffs.
	Relisted bool `json:"relisted,omitempty"`
}

// Store is the read-only persisted-store surface the engine depends on.
type Store interface {
	// FindByKey returns the row matching the natural key, tombstoned rows
	// included, or nil when no row exists. More than one row for the key
	// is a store-integrity violation and must be returned as an error,
	// never resolved by picking one.
	FindByKey(ctx context.Context, source models.Source, externalID string) (*models.PropertyEntity, error)

	// FindActiveExcluding returns every active (non-tombstoned) row whose
	// ID is not in ids.
	FindActiveExcluding(ctx context.Context, ids []string) ([]models.PropertyEntity, error)
}

// Options controls a single reconciliation run.
type Options struct {
	// DetectRemovals enables the deletion step. It must only be set when
	// the batch represents a complete crawl across all producers.
	DetectRemovals bool

	// Concurrency bounds the number of in-flight classifications.
	// Zero or negative falls back to DefaultConcurrency.
	Concurrency int
}

// DefaultConcurrency is the classification fan-out used when Options
// does not set one.
const DefaultConcurrency = 8

// ItemFailure records one observation whose classification failed.
type ItemFailure struct {
	Key models.PropertyKey `json:"key"`
	Err error              `json:"-"`
}

// Result is the outcome of one reconciliation run.
type Result struct {
	// Diffs holds surviving new/changed diffs in batch order, followed by
	// deleted diffs. Consumers must treat the slice as read-only.
	Diffs []Diff `json:"diffs"`

	// Failures lists observations skipped because their lookup failed.
	Failures []ItemFailure `json:"failures,omitempty"`

	// Summary provides aggregate counts for the run.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a run.
type Summary struct {
	// Observed is the batch size after in-batch duplicate resolution.
	Observed int `json:"observed"`

	// New counts listings unseen by the store.
	New int `json:"new"`

	// Changed counts surviving changed diffs, relistings included.
	Changed int `json:"changed"`

	// Relisted counts changed diffs whose row was tombstoned.
	Relisted int `json:"relisted"`

	// Deleted counts active rows absent from a complete batch.
	Deleted int `json:"deleted"`

	// Suppressed counts no-op updates dropped from the output.
	Suppressed int `json:"suppressed"`

	// Failed counts observations skipped due to lookup failures.
	Failed int `json:"failed"`

	// RemovalsSkipped is true when removal detection was requested but
	// suppressed because the batch had lookup failures.
	RemovalsSkipped bool `json:"removalsSkipped,omitempty"`
}
