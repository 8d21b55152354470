package catalog

import (
	"context"
	"strings"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/tree"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Service handles sport, event-format and venue operations.
type Service struct {
	store   store.Store
	engine  *upsert.Engine
	scoring *scoring.Registry
	trees   *tree.Builder
	logger  *zap.Logger
}

// NewService creates a new catalog service.
func NewService(s store.Store, engine *upsert.Engine, registry *scoring.Registry, logger *zap.Logger) *Service {
	return &Service{
		store:   s,
		engine:  engine,
		scoring: registry,
		trees:   tree.NewBuilder(logger),
		logger:  logger,
	}
}

// CreateSport registers a sport under its unique name. A taken name is a
// conflict, not an upsert: sports are the anchor other names hang off, so
// accidental merges are worse than a rejected request. When a scoring
// plugin is registered for the name, the plugin's score formats are wired
// up alongside.
func (s *Service) CreateSport(ctx context.Context, input SportInput) (*schema.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errs.Invalid("sport", "name", "must not be empty")
	}

	n, err := s.store.Count(ctx, schema.TableSports, store.NewQuery().Eq("name", name))
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, errs.Conflict(schema.TableSports, "name", name)
	}

	plugin, hasPlugin := s.scoring.Plugin(name)
	if hasPlugin && len(input.Metadata) > 0 {
		if err := plugin.ValidateMetadata(schema.TableSports, input.Metadata); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	row := store.RowOf(schema.Sport{
		ID:       id,
		Name:     name,
		Notes:    utils.TextPtr(input.Notes),
		Location: utils.TextPtr(input.Location),
		Metadata: datatypes.JSONMap(input.Metadata),
	})
	if err := s.store.Insert(ctx, schema.TableSports, row); err != nil {
		return nil, err
	}

	if hasPlugin {
		if _, err := s.scoring.EnsureScoreFormats(ctx, plugin); err != nil {
			return nil, err
		}
		s.logger.Info("Wired plugin score formats for new sport", zap.String("sport", name))
	}

	return s.GetSport(ctx, id)
}

// GetSport returns one sport by id.
func (s *Service) GetSport(ctx context.Context, id string) (*schema.Sport, error) {
	row, err := s.store.SelectOne(ctx, schema.TableSports, store.ByID(id))
	if err != nil {
		return nil, err
	}
	var sport schema.Sport
	if err := store.ScanRow(row, &sport); err != nil {
		return nil, err
	}
	return &sport, nil
}

// ListSports returns all sports in name order.
func (s *Service) ListSports(ctx context.Context) ([]schema.Sport, error) {
	rows, err := s.store.Select(ctx, schema.TableSports, store.NewQuery().OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	sports := make([]schema.Sport, 0, len(rows))
	for _, row := range rows {
		var sport schema.Sport
		if err := store.ScanRow(row, &sport); err != nil {
			return nil, err
		}
		sports = append(sports, sport)
	}
	return sports, nil
}

// CreateVenue records a venue. Venue names are display names, not keys, so
// duplicates are allowed.
func (s *Service) CreateVenue(ctx context.Context, input VenueInput) (*schema.Venue, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errs.Invalid("venue", "name", "must not be empty")
	}

	id := uuid.NewString()
	row := store.RowOf(schema.Venue{
		ID:       id,
		Name:     utils.TextPtr(strings.TrimSpace(input.Name)),
		Notes:    utils.TextPtr(input.Notes),
		Location: utils.TextPtr(input.Location),
		Metadata: datatypes.JSONMap(input.Metadata),
	})
	if err := s.store.Insert(ctx, schema.TableVenues, row); err != nil {
		return nil, err
	}
	return s.GetVenue(ctx, id)
}

// GetVenue returns one venue by id.
func (s *Service) GetVenue(ctx context.Context, id string) (*schema.Venue, error) {
	row, err := s.store.SelectOne(ctx, schema.TableVenues, store.ByID(id))
	if err != nil {
		return nil, err
	}
	var venue schema.Venue
	if err := store.ScanRow(row, &venue); err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListVenues returns all venues in name order.
func (s *Service) ListVenues(ctx context.Context) ([]schema.Venue, error) {
	rows, err := s.store.Select(ctx, schema.TableVenues, store.NewQuery().OrderBy("name", false))
	if err != nil {
		return nil, err
	}
	venues := make([]schema.Venue, 0, len(rows))
	for _, row := range rows {
		var venue schema.Venue
		if err := store.ScanRow(row, &venue); err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, nil
}
