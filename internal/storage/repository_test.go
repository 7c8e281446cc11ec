package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "orbital.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryGetSet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, ok, err := repo.Get(ctx, "orbital-dashboard-storage"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, "orbital-dashboard-storage", `{"state":{"theme":"light"}}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "orbital-dashboard-storage", `{"state":{"theme":"dark"}}`); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	v, ok, err := repo.Get(ctx, "orbital-dashboard-storage")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"state":{"theme":"dark"}}` {
		t.Fatalf("expected upserted value, got %q", v)
	}

	var rows int
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM preferences`).Scan(&rows); err != nil || rows != 1 {
		t.Fatalf("expected a single row, got %d err=%v", rows, err)
	}
}

func TestRepositoryEmptyKeyAndMiss(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Set(ctx, "", "v"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if _, ok, err := repo.Get(ctx, "a"); ok || err != nil {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orbital.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	repo.Close()

	// Migrations are idempotent on an existing database.
	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	if v, ok, err := repo.Get(ctx, "k"); err != nil || !ok || v != "v" {
		t.Fatalf("expected persisted value, got v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestRunMigrations_ReportsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.db")

	version, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected schema version 1, got %d", version)
	}

	// A second run is a no-op on the same version.
	if version, err = RunMigrations(path); err != nil || version != 1 {
		t.Fatalf("rerun: version=%d err=%v", version, err)
	}
}
