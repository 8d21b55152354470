// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure so core/config can embed it
// without importing Fiber.
package server
