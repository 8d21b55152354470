package event

import (
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/upsert"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new event feature.
func NewFeature(s store.Store, engine *upsert.Engine, registry *scoring.Registry, logger *zap.Logger) *Feature {
	svc := NewService(s, engine, registry, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "event"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
