package repository

import (
	"testing"

	"devlingo_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema.
// The connection pool is pinned to a single connection so the memory
// database survives for the whole test and concurrent access is
// serialized the way a real server's database would serialize writes.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.ProgressRecord{},
		&model.ScoreRecord{},
		&model.Note{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
