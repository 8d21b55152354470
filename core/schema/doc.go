// Package schema declares the database entities and the table registry.
//
// Every table uses a 36-char UUID string primary key and millisecond epoch
// timestamps, so rows survive export to JSON and re-import on another store
// without driver-specific type loss. The registry in tables.go is the single
// source of truth for migration order, snapshot table order and foreign-key
// columns; anything that walks "all tables" walks the registry instead of
// hardcoding names.
package schema
