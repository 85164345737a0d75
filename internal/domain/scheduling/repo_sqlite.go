package scheduling

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

const cols = `a.id, a.patient_id, a.appointment_date, a.appointment_time,
	a.appointment_type, a.doctor_name, a.notes, a.status,
	p.first_name, p.last_name, p.phone, a.created_at, a.updated_at`

func scan(row interface{ Scan(...interface{}) error }) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.AppointmentDate, &a.AppointmentTime,
		&a.AppointmentType, &a.DoctorName, &a.Notes, &a.Status,
		&a.PatientFirstName, &a.PatientLastName, &a.PatientPhone,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *sqliteRepo) Create(ctx context.Context, in *Input) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO appointments (patient_id, appointment_date, appointment_time,
		                          appointment_type, doctor_name, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.PatientID, in.AppointmentDate, in.AppointmentTime, in.AppointmentType,
		nullable(in.DoctorName), nullable(in.Notes), in.Status)
	if err != nil {
		return 0, fmt.Errorf("inserting appointment: %w", err)
	}
	return res.LastInsertId()
}

func (r *sqliteRepo) Update(ctx context.Context, id int64, in *Input) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `
		UPDATE appointments SET
			patient_id = ?, appointment_date = ?, appointment_time = ?,
			appointment_type = ?, doctor_name = ?, notes = ?, status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.PatientID, in.AppointmentDate, in.AppointmentTime, in.AppointmentType,
		nullable(in.DoctorName), nullable(in.Notes), in.Status, id)
	if err != nil {
		return false, fmt.Errorf("updating appointment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepo) Cancel(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `
		UPDATE appointments SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("cancelling appointment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	a, err := scan(r.conn.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM appointments a
		LEFT JOIN patients p ON a.patient_id = p.id
		WHERE a.id = ?`, cols), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment %d: %w", id, err)
	}
	return a, nil
}

func (r *sqliteRepo) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM appointments a
		LEFT JOIN patients p ON a.patient_id = p.id`, cols)
	var args []interface{}
	switch {
	case f.Today:
		query += ` WHERE a.appointment_date = DATE('now', 'localtime')`
	case f.Upcoming:
		query += ` WHERE a.appointment_date >= DATE('now', 'localtime') AND a.status != 'cancelled'`
	case f.PatientID != 0:
		query += ` WHERE a.patient_id = ?`
		args = append(args, f.PatientID)
	}
	query += ` ORDER BY a.appointment_date ASC, a.appointment_time ASC`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) HasConflict(ctx context.Context, date, timeOfDay string, exclude int64) (bool, error) {
	var n int
	err := r.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE appointment_date = ? AND appointment_time = ?
		  AND status NOT IN ('cancelled', 'completed')
		  AND id != ?`, date, timeOfDay, exclude).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking slot conflict: %w", err)
	}
	return n > 0, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
