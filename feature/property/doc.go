// Package property is the vertical slice for persisted listings: the
// GORM store, the persistence of diff sets, and the read-only HTTP API.
//
// The reconciliation engine itself lives in the diff subpackage and
// only reads through the Store; all writes (insert, field updates,
// delist, restore) go through the Persister, one call-set per diff.
//
// # Soft delete
//
// Rows are tombstoned via gorm.DeletedAt, so a delisted listing keeps
// its (source, external_id) key and its ID. When the listing reappears,
// the Persister restores the row before applying attribute updates.
package property
