// Package database provides SQLite connectivity for the knxlink request history.
//
// This package manages:
//   - Database connection in WAL mode so concurrent invocations can record
//   - Schema migrations read from any fs.FS (the migrations package embeds them)
//   - Connection lifecycle
//
// The database file is created with 0600 permissions; it records group
// addresses and written values.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.History.Path, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// Migrations are additive: new columns must be NULLABLE or have DEFAULT
// values, and each .up.sql file should have a matching .down.sql file.
package database
