package database

import (
	"os"
	"path/filepath"
	"testing"

	"carepulse/config"
)

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_sessions.sql", "0001_init.sql", "README.md", "broken.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	migrations, skipped, err := ListMigrations(dir)
	if err != nil {
		t.Fatalf("ListMigrations: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != "0001" || migrations[0].Name != "init" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != "0002" || migrations[1].Name != "sessions" {
		t.Errorf("unexpected second migration: %+v", migrations[1])
	}
	if len(skipped) != 1 || skipped[0] != "broken.sql" {
		t.Errorf("expected broken.sql to be skipped, got %v", skipped)
	}
}

func TestListMigrations_MissingDir(t *testing.T) {
	if _, _, err := ListMigrations(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestListMigrations_RepositoryMigrations(t *testing.T) {
	migrations, skipped, err := ListMigrations("../../migrations")
	if err != nil {
		t.Fatalf("ListMigrations: %v", err)
	}
	if len(migrations) == 0 || len(skipped) != 0 {
		t.Errorf("unexpected repository migrations: %v skipped=%v", migrations, skipped)
	}
}

func TestConnString(t *testing.T) {
	got := ConnString(config.PostgresConfig{
		Host: "db", Port: "5432", Username: "care", Password: "p@ss", DBName: "carepulse", SSLMode: "disable",
	})
	want := "postgres://care:p%40ss@db:5432/carepulse?sslmode=disable"
	if got != want {
		t.Errorf("ConnString = %q, want %q", got, want)
	}
}
