// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// opens either a sqlite file (the default, a single-binary local setup)
// or a MySQL server, based on the application's configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
