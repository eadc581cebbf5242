// Package database opens the SQLite store that holds the UCR device list
// and applies its schema migrations.
//
// The connection is configured for a single writer with WAL journaling
// and a busy timeout. Migrations are plain SQL files named
// YYYYMMDD_HHMMSS_description.up.sql with an optional matching
// .down.sql, supplied through MigrationsFS (normally the embedded files
// of the migrations package).
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are additive: new columns must be nullable or carry a default.
package database
