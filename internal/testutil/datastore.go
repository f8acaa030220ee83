package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jbweber/homelab/pokereview/internal/migrations"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates and returns a test database connection
func SetupTestDB(t *testing.T, testName string) (*sql.DB, func()) {
	t.Helper()

	db, err := sql.Open("sqlite", NewTestDSN(testName))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Hold one connection open so the shared in-memory database survives
	// pool churn for the life of the test
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	}

	return db, cleanup
}

// SetupTestDBWithMigrations creates a test database with every schema migration applied
func SetupTestDBWithMigrations(t *testing.T, testName string) (*sql.DB, func()) {
	t.Helper()

	db, cleanup := SetupTestDB(t, testName)
	if _, err := migrations.Run(context.Background(), db); err != nil {
		cleanup()
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db, cleanup
}
