package doctor

import (
	"context"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in *Input) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, apperr.Storage(err, "Failed to create doctor")
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int64, in *Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	ok, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return apperr.Storage(err, "Failed to update doctor")
	}
	if !ok {
		return apperr.NotFoundf("Doctor not found")
	}
	return nil
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return apperr.Storage(err, "Failed to deactivate doctor")
	}
	if !ok {
		return apperr.NotFoundf("Doctor not found")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch doctor")
	}
	if d == nil {
		return nil, apperr.NotFoundf("Doctor not found")
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Doctor, error) {
	out, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch doctors")
	}
	if out == nil {
		out = []Doctor{}
	}
	return out, nil
}
