package dashboard

import (
	"context"
	"time"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

// PendingCounter reports how many lab and imaging orders remain open.
// The worklist service implements it.
type PendingCounter interface {
	PendingCounts(ctx context.Context) (lab int, imaging int, err error)
}

type Service struct {
	repo    Repository
	pending PendingCounter
	now     func() time.Time
}

func NewService(repo Repository, pending PendingCounter) *Service {
	return &Service{repo: repo, pending: pending, now: time.Now}
}

// SetClock overrides the timestamp source. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	patients, err := s.repo.CountPatients(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to load dashboard stats")
	}
	visits, err := s.repo.CountTodaysVisits(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to load dashboard stats")
	}
	appointments, err := s.repo.CountTodaysAppointments(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to load dashboard stats")
	}
	lab, imaging, err := s.pending.PendingCounts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().Format("2006-01-02 15:04:05")
	return &Stats{
		TotalPatients:      patients,
		TodaysVisits:       visits,
		PendingLabTests:    lab,
		PendingXrays:       imaging,
		TodaysAppointments: appointments,
		Timestamp:          now,
		LastUpdated:        now,
	}, nil
}
