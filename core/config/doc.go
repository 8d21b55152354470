// Package config provides configuration management for the application.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags next to the
// fields they describe.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: driver selection plus SQLite/MySQL connection details
//   - Storage: S3/MinIO credentials and the photo bucket
//   - Log: logging level and format
//   - Store: display name of this local store
//
// Environment variables map to nested keys by underscore, so SERVER_PORT
// sets server.port and DATABASE_DRIVER sets database.driver.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Driver)
package config
