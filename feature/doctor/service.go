package doctor

import (
	"context"
	"time"

	"scorebook/core/database"
	"scorebook/core/store"
	"scorebook/feature/doctor/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Report is the outcome of a full store diagnosis. Each list carries one
// human-readable finding per fault; an empty report is a healthy store.
type Report struct {
	Healthy       bool     `json:"healthy"`
	CheckedEvents int      `json:"checkedEvents"`
	MissingTables []string `json:"missingTables,omitempty"`
	MirrorFaults  []string `json:"mirrorFaults,omitempty"`
	Orphans       []string `json:"orphans,omitempty"`
	Duplicates    []string `json:"duplicates,omitempty"`
	GeneratedAt   string   `json:"generatedAt"`
	ExecutionTime string   `json:"executionTime"`
}

// Service runs read-only consistency checks over the local store.
type Service struct {
	store  store.Store
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new doctor service.
func NewService(s store.Store, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{store: s, db: db, logger: logger}
}

// Diagnose runs every check and assembles the report. The checks only read,
// so they run concurrently; each writes its own report field.
func (s *Service) Diagnose(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	if s.db != nil {
		report.MissingTables = database.MissingTables(s.db)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		faults, n, err := checks.StageMirror(gctx, s.store)
		report.MirrorFaults = faults
		report.CheckedEvents = n
		return err
	})
	g.Go(func() error {
		findings, err := checks.Orphans(gctx, s.store)
		report.Orphans = findings
		return err
	})
	g.Go(func() error {
		findings, err := checks.Duplicates(gctx, s.store)
		report.Duplicates = findings
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Healthy = len(report.MissingTables) == 0 &&
		len(report.MirrorFaults) == 0 &&
		len(report.Orphans) == 0 &&
		len(report.Duplicates) == 0
	report.GeneratedAt = time.Now().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()

	s.logger.Info("Store diagnosis finished",
		zap.Bool("healthy", report.Healthy),
		zap.Int("checkedEvents", report.CheckedEvents),
		zap.Int("mirrorFaults", len(report.MirrorFaults)),
		zap.Int("orphans", len(report.Orphans)),
		zap.Int("duplicates", len(report.Duplicates)))
	return report, nil
}
