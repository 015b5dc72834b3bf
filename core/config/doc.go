// Package config provides configuration management for the asset inventory.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults live in `default:` struct tags next
// to each setting.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials, bucket and public URL prefix
//   - Log: Logging level and format
//   - Criticality: Catalog keys per tier, resolved flag policy, catalog cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Criticality.TierMedium)
package config
