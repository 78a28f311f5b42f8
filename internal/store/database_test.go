// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

// testDB opens a migrated database in a temp directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrate_CreatesSessionsTable(t *testing.T) {
	db := testDB(t)

	expiry := float64(time.Now().Add(time.Hour).Unix())
	if _, err := db.Exec(`INSERT INTO sessions (token, data, expiry) VALUES (?, ?, ?)`, "tok", []byte("x"), expiry); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestHealth(t *testing.T) {
	db := testDB(t)

	if err := Health(context.Background(), db); err != nil {
		t.Errorf("Health() = %v", err)
	}

	_ = db.Close()
	if err := Health(context.Background(), db); err == nil {
		t.Error("expected error on closed database")
	}
}

func TestDefaultDBConfig(t *testing.T) {
	cfg := DefaultDBConfig()
	if cfg.MaxOpenConns <= 0 || cfg.MaxIdleConns <= 0 {
		t.Errorf("unexpected pool config: %+v", cfg)
	}
}
