// Package database handles database connections, migration and schema
// inspection.
//
// It wraps GORM with the two drivers a store runs on: SQLite for the
// offline-first local file (the default) and MySQL for shared server
// deployments. Connection setup is the only driver-specific code in the
// repository; everything above it speaks GORM.
//
// # Bootstrap
//
// A store opens in three steps:
//
//	db, err := database.Connect(cfg.Database)
//	err = database.Migrate(db)
//	local, err := database.EnsureLocalStorage(db, cfg.Store.Name)
//
// Migrate walks the schema registry in dependency order. EnsureLocalStorage
// mints the store's permanent identity row on first run.
//
// # Schema Inspection
//
// GetTableColumns and MissingTables support the doctor checks: they report
// what the connected database actually contains so drift from the registry
// can be surfaced instead of guessed at.
package database
