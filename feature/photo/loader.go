package photo

import (
	"scorebook/core/storage"
	"scorebook/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new photo feature.
func NewFeature(s store.Store, objects storage.Client, bucket string, logger *zap.Logger) *Feature {
	svc := NewService(s, objects, bucket, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "photo"
}

// IsEnabled reports whether an object store is wired in. Without one the
// feature stays off and its routes are never mounted.
func (f *Feature) IsEnabled() bool {
	return f.service.objects != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
