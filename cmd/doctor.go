package cmd

import (
	"fmt"

	"scorebook/core/config"
	"scorebook/core/database"
	"scorebook/core/logger"
	"scorebook/core/store"
	"scorebook/feature/doctor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// doctorCmd runs the store consistency checks from the command line.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run consistency checks on the local store",
	Long: `Checks the local store for schema drift, event trees that no longer
mirror their venue format, rows whose referents are gone, and duplicate
identity mappings. Read-only; exits non-zero when anything is found.`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// No migration here: schema drift is one of the findings, so the
	// store is inspected exactly as it sits on disk.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := doctor.NewService(store.NewGorm(db), db, l)
	report, err := svc.Diagnose(ctx)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	if len(report.MissingTables) > 0 {
		l.Warn("Missing tables", zap.Strings("tables", report.MissingTables))
	}
	if len(report.MirrorFaults) > 0 {
		l.Warn("Stage trees out of step with their venue format", zap.Strings("faults", report.MirrorFaults))
	}
	if len(report.Orphans) > 0 {
		l.Warn("Rows whose referents are gone", zap.Strings("orphans", report.Orphans))
	}
	if len(report.Duplicates) > 0 {
		l.Warn("Duplicate rows", zap.Strings("duplicates", report.Duplicates))
	}

	if !report.Healthy {
		findings := len(report.MissingTables) + len(report.MirrorFaults) +
			len(report.Orphans) + len(report.Duplicates)
		return fmt.Errorf("store is unhealthy: %d findings", findings)
	}

	l.Info("Store is healthy",
		zap.Int("checked_events", report.CheckedEvents),
		zap.String("execution_time", report.ExecutionTime),
	)
	return nil
}
