package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/cliniq/cliniq/internal/platform/apperr"
	"github.com/cliniq/cliniq/internal/platform/auth"
)

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
}

func NewService(repo Repository, issuer *auth.TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, in *LoginInput) (*LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperr.Invalid("Email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to look up account")
	}
	if u == nil {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthenticated("Invalid credentials")
	}
	token, err := s.issuer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to issue token")
	}
	return &LoginResult{
		User:  UserInfo{ID: u.ID, Email: u.Email, Role: u.Role},
		Token: token,
	}, nil
}

// CreateUser registers an account with a bcrypt-hashed password.
// Used by the seed command and admin tooling.
func (s *Service) CreateUser(ctx context.Context, email, password, role string) (int64, error) {
	if email == "" || password == "" {
		return 0, apperr.Invalid("Email and password are required")
	}
	if role == "" {
		role = "admin"
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, apperr.Storage(err, "Failed to look up account")
	}
	if existing != nil {
		return 0, apperr.Conflictf("Account already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, apperr.Storage(err, "Failed to hash password")
	}
	id, err := s.repo.Create(ctx, email, string(hash), role)
	if err != nil {
		return 0, apperr.Storage(err, "Failed to create account")
	}
	return id, nil
}

// Default admin credentials installed on first run, matching the
// stock install. Operators are expected to change the password.
const (
	DefaultAdminEmail    = "Admin@gmail.com"
	DefaultAdminPassword = "Admin1234"
)

// EnsureAdmin creates the default admin account when no account with
// that email exists. Safe to call on every startup.
func (s *Service) EnsureAdmin(ctx context.Context) (bool, error) {
	existing, err := s.repo.GetByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		return false, apperr.Storage(err, "Failed to look up admin account")
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.CreateUser(ctx, DefaultAdminEmail, DefaultAdminPassword, "admin"); err != nil {
		return false, err
	}
	return true, nil
}
