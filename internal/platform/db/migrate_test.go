package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"001_core.sql":       "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"002_visits.sql":     "CREATE TABLE visits (id INTEGER PRIMARY KEY);",
		"003_scheduling.sql": "CREATE TABLE appointments (id INTEGER PRIMARY KEY);",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 {
		t.Errorf("expected version 1, got %d", migrations[0].Version)
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("expected name 001_core.sql, got %s", migrations[0].Name)
	}
	if migrations[0].SQL != "CREATE TABLE users (id INTEGER PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}

	if migrations[1].Version != 2 {
		t.Errorf("expected version 2, got %d", migrations[1].Version)
	}
	if migrations[2].Version != 3 {
		t.Errorf("expected version 3, got %d", migrations[2].Version)
	}
}

func TestLoadMigrations_SortOrder(t *testing.T) {
	dir := t.TempDir()

	// Create files in reverse order to test sorting
	files := []struct {
		name    string
		content string
	}{
		{"010_tables.sql", "SELECT 10;"},
		{"002_second.sql", "SELECT 2;"},
		{"001_first.sql", "SELECT 1;"},
		{"005_middle.sql", "SELECT 5;"},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", f.name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 4 {
		t.Fatalf("expected 4 migrations, got %d", len(migrations))
	}

	expectedVersions := []int{1, 2, 5, 10}
	for i, expected := range expectedVersions {
		if migrations[i].Version != expected {
			t.Errorf("migration[%d]: expected version %d, got %d", i, expected, migrations[i].Version)
		}
	}
}

func TestLoadMigrations_InvalidFilename(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"001_valid.sql":      "SELECT 1;",
		"readme.sql":         "-- this has no version prefix",
		"notes.txt":          "not a sql file",
		"abc_invalid.sql":    "-- non-numeric prefix",
		"002_also_valid.sql": "SELECT 2;",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 valid migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 {
		t.Errorf("expected first migration version 1, got %d", migrations[0].Version)
	}
	if migrations[1].Version != 2 {
		t.Errorf("expected second migration version 2, got %d", migrations[1].Version)
	}
}

func TestLoadMigrations_EmptyDir(t *testing.T) {
	dir := t.TempDir()

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 0 {
		t.Errorf("expected 0 migrations from empty dir, got %d", len(migrations))
	}
}

func TestMigrator_UpAndStatus(t *testing.T) {
	ctx := context.Background()

	conn, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"), 1000)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	dir := t.TempDir()
	files := map[string]string{
		"001_core.sql":   "CREATE TABLE patients (id INTEGER PRIMARY KEY AUTOINCREMENT, first_name TEXT NOT NULL);",
		"002_visits.sql": "CREATE TABLE visits (id INTEGER PRIMARY KEY AUTOINCREMENT, patient_id INTEGER NOT NULL);",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(conn, dir)

	count, err := migrator.Up(ctx)
	if err != nil {
		t.Fatalf("Up() error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 applied migrations, got %d", count)
	}

	// Second run is a no-op
	count, err = migrator.Up(ctx)
	if err != nil {
		t.Fatalf("second Up() error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 applied migrations on rerun, got %d", count)
	}

	statuses, err := migrator.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("expected migration %d to be applied", s.Version)
		}
		if s.AppliedAt == nil {
			t.Errorf("expected applied_at for migration %d", s.Version)
		}
	}

	// Migrated tables are usable
	if _, err := conn.ExecContext(ctx, "INSERT INTO patients (first_name) VALUES ('Jane')"); err != nil {
		t.Errorf("insert into migrated table: %v", err)
	}
}

func TestMigrator_UpTo(t *testing.T) {
	ctx := context.Background()

	conn, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"), 1000)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	dir := t.TempDir()
	files := map[string]string{
		"001_a.sql": "CREATE TABLE a (id INTEGER PRIMARY KEY);",
		"002_b.sql": "CREATE TABLE b (id INTEGER PRIMARY KEY);",
		"003_c.sql": "CREATE TABLE c (id INTEGER PRIMARY KEY);",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(conn, dir)
	count, err := migrator.UpTo(ctx, 2)
	if err != nil {
		t.Fatalf("UpTo() error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 applied migrations, got %d", count)
	}

	statuses, err := migrator.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if statuses[2].Applied {
		t.Error("expected migration 003 to remain pending")
	}
}
