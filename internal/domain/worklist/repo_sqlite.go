package worklist

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

func (r *sqliteRepo) ListQualifying(ctx context.Context) ([]VisitTests, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT v.id, v.patient_id, v.visit_date,
		       COALESCE(v.lab_tests, ''), COALESCE(v.imaging_tests, ''),
		       COALESCE(p.first_name, ''), COALESCE(p.last_name, ''),
		       p.phone, p.email
		FROM visits v
		LEFT JOIN patients p ON v.patient_id = p.id
		WHERE (v.lab_tests IS NOT NULL AND v.lab_tests != '' AND v.lab_tests != '[]')
		   OR (v.imaging_tests IS NOT NULL AND v.imaging_tests != '' AND v.imaging_tests != '[]')
		ORDER BY v.visit_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying qualifying visits: %w", err)
	}
	defer rows.Close()

	var visits []VisitTests
	for rows.Next() {
		var v VisitTests
		if err := rows.Scan(&v.VisitID, &v.PatientID, &v.VisitDate,
			&v.Lab, &v.Imaging, &v.FirstName, &v.LastName, &v.Phone, &v.Email); err != nil {
			return nil, fmt.Errorf("scanning visit row: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *sqliteRepo) GetVisit(ctx context.Context, visitID int64) (*VisitTests, error) {
	var v VisitTests
	err := r.conn.QueryRowContext(ctx, `
		SELECT id, patient_id, visit_date,
		       COALESCE(lab_tests, ''), COALESCE(imaging_tests, '')
		FROM visits WHERE id = ?`, visitID).
		Scan(&v.VisitID, &v.PatientID, &v.VisitDate, &v.Lab, &v.Imaging)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying visit %d: %w", visitID, err)
	}
	return &v, nil
}

func (r *sqliteRepo) SaveTests(ctx context.Context, visitID int64, kind Kind, raw string) error {
	_, err := r.conn.ExecContext(ctx,
		fmt.Sprintf("UPDATE visits SET %s = ? WHERE id = ?", kind.Column()), raw, visitID)
	if err != nil {
		return fmt.Errorf("updating %s for visit %d: %w", kind.Column(), visitID, err)
	}
	return nil
}
