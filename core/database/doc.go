// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections (production)
// or SQLite databases (tests, single-node installs) from the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies connection pool settings
// and pings the database before returning.
//
// # Schema Inspection
//
// GetTableColumns returns the live column definitions of a table. The integrity
// feature compares them against the GORM models of the inventory to detect
// schema drift before a synchronization run writes to the tables.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "criticality_records")
package database
