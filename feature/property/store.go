package property

import (
	"context"
	"fmt"

	"renting-scraper/feature/property/models"

	"gorm.io/gorm"
)

// Store is the GORM-backed persisted store for listings. It implements
// diff.Store for the engine and carries the write operations used by
// the Persister.
type Store struct {
	db *gorm.DB
}

// NewStore creates a listing store on top of an open GORM connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByKey returns the row matching (source, externalID), tombstoned
// rows included, or nil when absent. Two rows for one key violate the
// unique-key invariant and are surfaced as an error rather than
// silently picking one.
func (s *Store) FindByKey(ctx context.Context, source models.Source, externalID string) (*models.PropertyEntity, error) {
	var rows []models.PropertyEntity
	err := s.db.WithContext(ctx).
		Unscoped().
		Where("source = ? AND external_id = ?", source, externalID).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up listing %s/%s: %w", source, externalID, err)
	}

	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("store integrity violation: multiple rows for key %s/%s", source, externalID)
	}
}

// FindActiveExcluding returns every active row whose ID is not in ids.
// With an empty set, every active row qualifies.
func (s *Store) FindActiveExcluding(ctx context.Context, ids []string) ([]models.PropertyEntity, error) {
	query := s.db.WithContext(ctx)
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}

	var rows []models.PropertyEntity
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query active listings: %w", err)
	}
	return rows, nil
}

// Insert persists a candidate entity. The ID is assigned by the
// BeforeCreate hook when empty.
func (s *Store) Insert(ctx context.Context, entity *models.PropertyEntity) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to insert listing %s/%s: %w", entity.Source, entity.ExternalID, err)
	}
	return nil
}

// UpdateFields applies the given column values to one row.
func (s *Store) UpdateFields(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(&models.PropertyEntity{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", id, err)
	}
	return nil
}

// SoftDelete tombstones one row, keeping its natural key reserved.
func (s *Store) SoftDelete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PropertyEntity{}).Error
	if err != nil {
		return fmt.Errorf("failed to delist listing %s: %w", id, err)
	}
	return nil
}

// Restore clears the tombstone of one row, returning it to the active
// state with its original ID.
func (s *Store) Restore(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Unscoped().
		Model(&models.PropertyEntity{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
	if err != nil {
		return fmt.Errorf("failed to restore listing %s: %w", id, err)
	}
	return nil
}

// ListActive returns all active rows.
func (s *Store) ListActive(ctx context.Context) ([]models.PropertyEntity, error) {
	var rows []models.PropertyEntity
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active listings: %w", err)
	}
	return rows, nil
}

// ListDelisted returns all tombstoned rows.
func (s *Store) ListDelisted(ctx context.Context) ([]models.PropertyEntity, error) {
	var rows []models.PropertyEntity
	err := s.db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list delisted listings: %w", err)
	}
	return rows, nil
}
