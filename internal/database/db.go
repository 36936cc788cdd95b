package database

import (
	"fmt"

	"go-vend-agent/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates the service's in-memory database and syncs the schema. All
// state in this system lives here for the lifetime of the process; nothing
// survives a restart.
func Open() (*gorm.DB, error) {
	return OpenDSN("file:vend?mode=memory&cache=shared")
}

// OpenDSN opens a sqlite database at the given DSN. Tests use this with a
// per-test memory DSN so they do not share state.
func OpenDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", dsn, err)
	}

	// sqlite memory databases exist per connection unless shared; keep a
	// single connection so the pool never sees an empty twin.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Machine{},
		&models.Product{},
		&models.SaleRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
