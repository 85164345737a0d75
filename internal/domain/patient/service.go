package patient

import (
	"context"

	"github.com/cliniq/cliniq/internal/platform/apperr"
	"github.com/cliniq/cliniq/pkg/pagination"
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
		return 0, apperr.Storage(err, "Failed to create patient")
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int64, in *Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	ok, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return apperr.Storage(err, "Failed to update patient")
	}
	if !ok {
		return apperr.NotFoundf("Patient not found")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch patient")
	}
	if p == nil {
		return nil, apperr.NotFoundf("Patient not found")
	}
	return p, nil
}

// List returns a page of patients plus the total row count.
func (s *Service) List(ctx context.Context, page pagination.Params) ([]Patient, int, error) {
	patients, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, apperr.Storage(err, "Failed to fetch patients")
	}
	if patients == nil {
		patients = []Patient{}
	}
	total := len(patients)
	if page.Limit > 0 {
		total, err = s.repo.Count(ctx)
		if err != nil {
			return nil, 0, apperr.Storage(err, "Failed to fetch patients")
		}
	}
	return patients, total, nil
}
