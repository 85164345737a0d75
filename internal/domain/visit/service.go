package visit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/cliniq/cliniq/internal/domain/worklist"
	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateResult is what visit creation reports back.
type CreateResult struct {
	VisitID   int64
	AISummary string
}

// Create validates the payload, renders the summary narrative and persists
// the visit with all of its children in one transaction.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*CreateResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	labJSON, err := json.Marshal(orEmpty(in.LabTests))
	if err != nil {
		return nil, apperr.Storage(err, "Failed to create visit")
	}
	imageJSON, err := json.Marshal(orEmpty(in.ImagingTests))
	if err != nil {
		return nil, apperr.Storage(err, "Failed to create visit")
	}

	summary := GenerateSummary(in)

	visitID, err := s.repo.Create(ctx, &NewVisit{
		Input:     in,
		LabJSON:   string(labJSON),
		ImageJSON: string(imageJSON),
		AISummary: summary,
	})
	if err != nil {
		return nil, apperr.Storage(err, "Failed to create visit")
	}

	if flags := InterpretVitals(in.VitalSigns); len(flags) > 0 {
		s.logger.Info().
			Int64("visit_id", visitID).
			Strs("flags", flags).
			Msg("abnormal vitals recorded")
	}

	return &CreateResult{VisitID: visitID, AISummary: summary}, nil
}

func (s *Service) List(ctx context.Context) ([]Visit, error) {
	visits, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch visits")
	}
	if visits == nil {
		visits = []Visit{}
	}
	return visits, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]Visit, error) {
	visits, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch visits")
	}
	if visits == nil {
		visits = []Visit{}
	}
	return visits, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch visit")
	}
	if v == nil {
		return nil, apperr.NotFoundf("Visit not found")
	}
	return v, nil
}

// orEmpty keeps the stored columns as "[]" rather than "null" when no
// tests were ordered, matching what the worklist's qualifying filter
// expects of an empty column.
func orEmpty(records []worklist.TestRecord) []worklist.TestRecord {
	if records == nil {
		return []worklist.TestRecord{}
	}
	return records
}
