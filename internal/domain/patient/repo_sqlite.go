package patient

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cliniq/cliniq/pkg/pagination"
)

type sqliteRepo struct {
	conn *sql.DB
}

func NewSQLiteRepo(conn *sql.DB) Repository {
	return &sqliteRepo{conn: conn}
}

const cols = `id, first_name, last_name, email, phone, date_of_birth, gender,
	address, emergency_contact, emergency_phone, medical_history, allergies,
	created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.DateOfBirth, &p.Gender, &p.Address, &p.EmergencyContact,
		&p.EmergencyPhone, &p.MedicalHistory, &p.Allergies,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *sqliteRepo) Create(ctx context.Context, in *Input) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO patients (first_name, last_name, email, phone, date_of_birth,
		                      gender, address, emergency_contact, emergency_phone,
		                      medical_history, allergies)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.FirstName, in.LastName, nullable(in.Email), nullable(in.Phone),
		nullable(in.DateOfBirth), nullable(in.Gender), nullable(in.Address),
		nullable(in.EmergencyContact), nullable(in.EmergencyPhone),
		nullable(in.MedicalHistory), nullable(in.Allergies))
	if err != nil {
		return 0, fmt.Errorf("inserting patient: %w", err)
	}
	return res.LastInsertId()
}

func (r *sqliteRepo) Update(ctx context.Context, id int64, in *Input) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `
		UPDATE patients SET
			first_name = ?, last_name = ?, email = ?, phone = ?,
			date_of_birth = ?, gender = ?, address = ?,
			emergency_contact = ?, emergency_phone = ?,
			medical_history = ?, allergies = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.FirstName, in.LastName, nullable(in.Email), nullable(in.Phone),
		nullable(in.DateOfBirth), nullable(in.Gender), nullable(in.Address),
		nullable(in.EmergencyContact), nullable(in.EmergencyPhone),
		nullable(in.MedicalHistory), nullable(in.Allergies), id)
	if err != nil {
		return false, fmt.Errorf("updating patient %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scan(r.conn.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM patients WHERE id = ?", cols), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying patient %d: %w", id, err)
	}
	return p, nil
}

func (r *sqliteRepo) List(ctx context.Context, page pagination.Params) ([]Patient, error) {
	query := fmt.Sprintf("SELECT %s FROM patients ORDER BY created_at DESC", cols)
	if clause := page.SQL(); clause != "" {
		query += " " + clause
	}
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning patient: %w", err)
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

func (r *sqliteRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM patients").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting patients: %w", err)
	}
	return n, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
