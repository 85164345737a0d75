package doctor

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

const cols = `id, name, specialty, phone, email, active, created_at, updated_at`

func scan(row interface{ Scan(...interface{}) error }) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Phone, &d.Email,
		&d.Active, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *sqliteRepo) Create(ctx context.Context, in *Input) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO doctors (name, specialty, phone, email, active)
		VALUES (?, ?, ?, ?, ?)`,
		in.Name, nullable(in.Specialty), nullable(in.Phone), nullable(in.Email),
		in.IsActive())
	if err != nil {
		return 0, fmt.Errorf("inserting doctor: %w", err)
	}
	return res.LastInsertId()
}

func (r *sqliteRepo) Update(ctx context.Context, id int64, in *Input) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `
		UPDATE doctors SET
			name = ?, specialty = ?, phone = ?, email = ?, active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Name, nullable(in.Specialty), nullable(in.Phone), nullable(in.Email),
		in.IsActive(), id)
	if err != nil {
		return false, fmt.Errorf("updating doctor %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `
		UPDATE doctors SET active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deactivating doctor %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	d, err := scan(r.conn.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM doctors WHERE id = ?", cols), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying doctor %d: %w", id, err)
	}
	return d, nil
}

func (r *sqliteRepo) List(ctx context.Context, activeOnly bool) ([]Doctor, error) {
	query := fmt.Sprintf("SELECT %s FROM doctors", cols)
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name ASC"

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying doctors: %w", err)
	}
	defer rows.Close()

	var out []Doctor
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning doctor: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
