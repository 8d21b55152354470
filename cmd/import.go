package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"scorebook/core/config"
	"scorebook/core/database"
	"scorebook/core/logger"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/upsert"
	"scorebook/feature/sync"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	importStrategy string
	importDryRun   bool
	importYes      bool
	noMergeEntries bool
)

// importCmd folds a snapshot file into the local store.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot file into the local store",
	Long: `Import a snapshot exported by another device.

Rows already mapped through merge entries follow the chosen strategy
(skip, overwrite or merge); unmapped rows are inserted under freshly
minted local ids and recorded, so re-importing the same snapshot never
duplicates. Rows that cannot be placed are reported, not fatal.

Examples:
  # Plan only, write nothing
  scorebook import sunday.json --dry-run

  # Merge with interactive confirmation
  scorebook import sunday.json

  # Keep local rows wherever they already exist
  scorebook import sunday.json --strategy skip --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importStrategy, "strategy", sync.StrategyMerge, "Conflict strategy for already-mapped rows (skip|overwrite|merge)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Plan the whole import without writing anything")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Auto-confirm the import (non-interactive)")
	importCmd.Flags().BoolVar(&noMergeEntries, "no-merge-entries", false, "Skip identity mapping (one-off seeding; re-imports will duplicate)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap sync.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	local, err := database.EnsureLocalStorage(db, cfg.Store.Name)
	if err != nil {
		return fmt.Errorf("failed to establish store identity: %w", err)
	}

	rows := 0
	for _, tableRows := range snap.Tables {
		rows += len(tableRows)
	}
	l.Info("Snapshot loaded",
		zap.String("file", args[0]),
		zap.String("from_storage", snap.StorageID),
		zap.Bool("own_snapshot", snap.StorageID == local.ID),
		zap.Int("tables", len(snap.Tables)),
		zap.Int("rows", rows),
	)

	// A real import mutates the store, so it gets the same confirmation
	// gate as every other destructive command.
	if !importDryRun {
		if !confirmImport(rows) {
			l.Warn("Import cancelled by user. No changes were made.")
			return nil
		}
	}

	st := store.NewGorm(db)
	svc := sync.NewService(st, upsert.New(st, l), l)

	report, err := svc.Import(ctx, &snap, sync.ImportOptions{
		Strategy:       importStrategy,
		DryRun:         importDryRun,
		NoMergeEntries: noMergeEntries,
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printImportReport(l, report)
	return nil
}

// printImportReport logs per-table counts in dependency order, a sample of
// row failures, and the fold of everything.
func printImportReport(l *zap.Logger, report *sync.Report) {
	for _, table := range schema.SyncedTables() {
		c, ok := report.Tables[table]
		if !ok {
			continue
		}
		l.Info("Table report",
			zap.String("table", table),
			zap.Int("imported", c.Imported),
			zap.Int("merged", c.Merged),
			zap.Int("skipped", c.Skipped),
			zap.Int("errors", c.Errors),
		)
	}

	if len(report.Errors) > 0 {
		// Show sample of failures (max 5 for logger)
		maxShow := 5
		if len(report.Errors) < maxShow {
			maxShow = len(report.Errors)
		}
		for i := 0; i < maxShow; i++ {
			e := report.Errors[i]
			l.Warn("Row failed",
				zap.String("table", e.Table),
				zap.String("row_id", e.RowID),
				zap.String("reason", e.Message),
			)
		}
		if len(report.Errors) > maxShow {
			l.Warn("Additional failures not shown", zap.Int("count", len(report.Errors)-maxShow))
		}
	}

	total := report.Totals()
	l.Info("Import finished",
		zap.String("strategy", report.Strategy),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("imported", total.Imported),
		zap.Int("merged", total.Merged),
		zap.Int("skipped", total.Skipped),
		zap.Int("errors", total.Errors),
	)
}

// confirmImport prompts the user for confirmation or uses the --yes flag.
func confirmImport(rows int) bool {
	if importYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  About to import %d rows. Type 'yes' to confirm: ", rows)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
