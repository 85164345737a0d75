package scheduling

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/cliniq/cliniq/internal/platform/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, filepath.Join(t.TempDir(), "clinic.db"), 5000)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	m := db.NewMigrator(conn, "../../../migrations")
	if _, err := m.Up(ctx); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	return conn
}

func seedPatient(t *testing.T, conn *sql.DB) int64 {
	t.Helper()
	res, err := conn.ExecContext(context.Background(), `
		INSERT INTO patients (first_name, last_name, phone)
		VALUES ('Ayesha', 'Khan', '555-0100')`)
	if err != nil {
		t.Fatalf("seeding patient: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestSQLiteCreateAndGet_JoinsPatient(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLiteRepo(conn)
	ctx := context.Background()
	pid := seedPatient(t, conn)

	in := &Input{PatientID: pid, AppointmentDate: "2026-09-01", AppointmentTime: "10:00"}
	in.ApplyDefaults()
	id, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	a, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if a == nil {
		t.Fatal("appointment not found")
	}
	if a.PatientFirstName == nil || *a.PatientFirstName != "Ayesha" {
		t.Errorf("patient first name = %v", a.PatientFirstName)
	}
	if a.AppointmentType != "consultation" || a.Status != "scheduled" {
		t.Errorf("defaults not stored: %+v", a)
	}
}

func TestSQLiteHasConflict(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLiteRepo(conn)
	ctx := context.Background()
	pid := seedPatient(t, conn)

	in := &Input{PatientID: pid, AppointmentDate: "2026-09-01", AppointmentTime: "10:00", Status: "scheduled", AppointmentType: "consultation"}
	id, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	conflict, err := repo.HasConflict(ctx, "2026-09-01", "10:00", 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if !conflict {
		t.Error("expected conflict for occupied slot")
	}

	conflict, err = repo.HasConflict(ctx, "2026-09-01", "10:00", id)
	if err != nil {
		t.Fatalf("HasConflict exclude: %v", err)
	}
	if conflict {
		t.Error("excluded id should not conflict with itself")
	}

	if _, err := repo.Cancel(ctx, id); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	conflict, err = repo.HasConflict(ctx, "2026-09-01", "10:00", 0)
	if err != nil {
		t.Fatalf("HasConflict after cancel: %v", err)
	}
	if conflict {
		t.Error("cancelled booking should free the slot")
	}
}

func TestSQLiteList_Filters(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLiteRepo(conn)
	ctx := context.Background()
	pid := seedPatient(t, conn)

	today := time.Now().Format("2006-01-02")
	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	past := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	mk := func(date, timeOfDay, status string) {
		t.Helper()
		in := &Input{PatientID: pid, AppointmentDate: date, AppointmentTime: timeOfDay, Status: status, AppointmentType: "consultation"}
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("Create %s %s: %v", date, timeOfDay, err)
		}
	}
	mk(today, "09:00", "scheduled")
	mk(future, "10:00", "scheduled")
	mk(future, "11:00", "cancelled")
	mk(past, "08:00", "completed")

	todays, err := repo.List(ctx, ListFilter{Today: true})
	if err != nil {
		t.Fatalf("List today: %v", err)
	}
	if len(todays) != 1 || todays[0].AppointmentTime != "09:00" {
		t.Errorf("today filter = %+v", todays)
	}

	upcoming, err := repo.List(ctx, ListFilter{Upcoming: true})
	if err != nil {
		t.Fatalf("List upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Errorf("upcoming = %d entries, want 2 (today + future, no cancelled)", len(upcoming))
	}

	all, err := repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("all = %d entries, want 4", len(all))
	}
	if all[0].AppointmentDate != past {
		t.Errorf("expected date-ascending order, first = %s", all[0].AppointmentDate)
	}
}
