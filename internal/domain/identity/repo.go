package identity

import "context"

type Repository interface {
	// GetByEmail returns nil, nil when no account exists.
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, email, passwordHash, role string) (int64, error)
}
