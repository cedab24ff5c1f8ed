package property

import (
	"context"

	"renting-scraper/feature/property/models"

	"go.uber.org/zap"
)

// lister is the read surface the HTTP service needs from the store.
type lister interface {
	ListActive(ctx context.Context) ([]models.PropertyEntity, error)
	ListDelisted(ctx context.Context) ([]models.PropertyEntity, error)
	FindByKey(ctx context.Context, source models.Source, externalID string) (*models.PropertyEntity, error)
}

// Service exposes read-only queries over the persisted snapshot.
type Service struct {
	store  lister
	logger *zap.Logger
}

// NewService creates the property query service.
func NewService(store lister, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ListActive returns the active listings.
func (s *Service) ListActive(ctx context.Context) ([]models.PropertyEntity, error) {
	return s.store.ListActive(ctx)
}

// ListDelisted returns the tombstoned listings.
func (s *Service) ListDelisted(ctx context.Context) ([]models.PropertyEntity, error) {
	return s.store.ListDelisted(ctx)
}

// GetByKey returns one listing by natural key, delisted rows included.
// A nil entity means no row exists for the key.
func (s *Service) GetByKey(ctx context.Context, source models.Source, externalID string) (*models.PropertyEntity, error) {
	return s.store.FindByKey(ctx, source, externalID)
}
