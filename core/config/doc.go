// Package config provides configuration management for the renting scraper.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: database connection details (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket settings for run reports
//   - Log: logging level and format
//   - Mail: SMTP settings for diff notifications
//   - Scrape: producer feeds and reconciliation run settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
