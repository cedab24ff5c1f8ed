package property

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the property feature.
func NewFeature(db *gorm.DB, logger *zap.Logger) *Feature {
	if db == nil {
		// No database means no snapshot to serve.
		return &Feature{enabled: false}
	}
	svc := NewService(NewStore(db), logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: true}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "property"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
