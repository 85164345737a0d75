package scheduling

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
	in.ApplyDefaults()
	conflict, err := s.repo.HasConflict(ctx, in.AppointmentDate, in.AppointmentTime, 0)
	if err != nil {
		return 0, apperr.Storage(err, "Failed to create appointment")
	}
	if conflict {
		return 0, apperr.Conflictf("Time slot already booked")
	}
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, apperr.Storage(err, "Failed to create appointment")
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, id int64, in *Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	in.ApplyDefaults()
	conflict, err := s.repo.HasConflict(ctx, in.AppointmentDate, in.AppointmentTime, id)
	if err != nil {
		return apperr.Storage(err, "Failed to update appointment")
	}
	if conflict {
		return apperr.Conflictf("Time slot already booked")
	}
	ok, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return apperr.Storage(err, "Failed to update appointment")
	}
	if !ok {
		return apperr.NotFoundf("Appointment not found")
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	ok, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return apperr.Storage(err, "Failed to cancel appointment")
	}
	if !ok {
		return apperr.NotFoundf("Appointment not found")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch appointment")
	}
	if a == nil {
		return nil, apperr.NotFoundf("Appointment not found")
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch appointments")
	}
	if out == nil {
		out = []Appointment{}
	}
	return out, nil
}
