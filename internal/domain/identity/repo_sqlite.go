package identity

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

func (r *sqliteRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn.QueryRowContext(ctx, `
		SELECT id, email, password, role, created_at FROM users WHERE email = ?`,
		email).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return &u, nil
}

func (r *sqliteRepo) Create(ctx context.Context, email, passwordHash, role string) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO users (email, password, role) VALUES (?, ?, ?)`,
		email, passwordHash, role)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return res.LastInsertId()
}
