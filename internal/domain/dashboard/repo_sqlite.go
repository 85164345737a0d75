package dashboard

import (
	"context"
	"database/sql"
	"fmt"
)

type sqliteRepo struct {
	conn *sql.DB
}

func NewSQLiteRepo(conn *sql.DB) Repository {
	return &sqliteRepo{conn: conn}
}

func (r *sqliteRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.conn.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting: %w", err)
	}
	return n, nil
}

func (r *sqliteRepo) CountPatients(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patients`)
}

func (r *sqliteRepo) CountTodaysVisits(ctx context.Context) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM visits
		WHERE DATE(visit_date) = DATE('now', 'localtime')`)
}

func (r *sqliteRepo) CountTodaysAppointments(ctx context.Context) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE appointment_date = DATE('now', 'localtime')
		  AND status != 'cancelled'`)
}
