package worklist

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
	locks  keyedMutex
	now    func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// SetClock overrides the service clock. Tests use it to pin report dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns the flattened worklist: every name-bearing test record of
// every qualifying visit, newest order date first.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	visits, err := s.repo.ListQualifying(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "Failed to fetch lab tests")
	}

	items := make([]Item, 0)
	for _, v := range visits {
		items = append(items, s.flatten(&v, KindLab)...)
		items = append(items, s.flatten(&v, KindImaging)...)
	}

	// Stable so records of one visit keep their array order when order
	// dates tie.
	sort.SliceStable(items, func(i, j int) bool {
		return parseOrderDate(items[i].OrderDate).After(parseOrderDate(items[j].OrderDate))
	})

	return items, nil
}

// flatten expands one embedded column into worklist items. Records without
// a test_name are skipped; missing fields take the worklist defaults.
func (s *Service) flatten(v *VisitTests, kind Kind) []Item {
	records := s.decode(v.Raw(kind), v.VisitID, kind)

	var items []Item
	for i, rec := range records {
		if rec.TestName == "" {
			continue
		}
		items = append(items, Item{
			ID:           TestID{VisitID: v.VisitID, Kind: kind, Index: i}.String(),
			VisitID:      v.VisitID,
			PatientID:    v.PatientID,
			PatientName:  patientName(v.FirstName, v.LastName),
			PatientPhone: v.Phone,
			PatientEmail: v.Email,
			TestName:     rec.TestName,
			TestType:     string(kind),
			Status:       defaultStr(rec.Status, "pending"),
			OrderDate:    v.VisitDate,
			Results:      rec.Results,
			Notes:        rec.Notes,
			NormalRange:  rec.NormalRange,
			Priority:     defaultStr(rec.Priority, "normal"),
			Technician:   rec.Technician,
			ReportDate:   rec.ReportDate,
		})
	}
	return items
}

// UpdateRequest carries a single-record status update.
type UpdateRequest struct {
	TestID  string `json:"test_id"`
	Status  string `json:"status"`
	Results string `json:"results"`
	Notes   string `json:"notes"`
}

// Update applies a status change to one record inside a visit's embedded
// array and writes the whole column back. The read-modify-write runs under
// a per-visit lock.
func (s *Service) Update(ctx context.Context, req UpdateRequest) error {
	id, err := ParseTestID(req.TestID)
	if err != nil {
		return err
	}

	mu := s.locks.lock(id.VisitID)
	defer mu.Unlock()

	visit, err := s.repo.GetVisit(ctx, id.VisitID)
	if err != nil {
		return apperr.Storage(err, "Failed to update test")
	}
	if visit == nil {
		return apperr.NotFoundf("Visit not found")
	}

	records := s.decode(visit.Raw(id.Kind), id.VisitID, id.Kind)
	if id.Index >= len(records) {
		return apperr.NotFoundf("Test not found")
	}

	records[id.Index].Status = req.Status
	records[id.Index].Results = req.Results
	records[id.Index].Notes = req.Notes
	if req.Status == "completed" {
		today := s.now().Format("2006-01-02")
		records[id.Index].ReportDate = &today
	} else {
		records[id.Index].ReportDate = nil
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return apperr.Storage(err, "Failed to update test")
	}

	if err := s.repo.SaveTests(ctx, id.VisitID, id.Kind, string(raw)); err != nil {
		return apperr.Storage(err, "Failed to update test")
	}
	return nil
}

// PendingCounts scans the qualifying visits and counts name-bearing records
// whose status is (or defaults to) pending, per kind. The dashboard reads
// these.
func (s *Service) PendingCounts(ctx context.Context) (lab int, imaging int, err error) {
	visits, err := s.repo.ListQualifying(ctx)
	if err != nil {
		return 0, 0, apperr.Storage(err, "Failed to fetch lab tests")
	}

	for _, v := range visits {
		for _, rec := range s.decode(v.Lab, v.VisitID, KindLab) {
			if rec.TestName != "" && defaultStr(rec.Status, "pending") == "pending" {
				lab++
			}
		}
		for _, rec := range s.decode(v.Imaging, v.VisitID, KindImaging) {
			if rec.TestName != "" && defaultStr(rec.Status, "pending") == "pending" {
				imaging++
			}
		}
	}
	return lab, imaging, nil
}

// decode unmarshals an embedded column. A column that is empty or holds
// malformed JSON yields an empty slice; the malformed case is logged but
// never surfaces to the caller, so one corrupt column cannot take down the
// whole worklist.
func (s *Service) decode(raw string, visitID int64, kind Kind) []TestRecord {
	if raw == "" {
		return nil
	}
	var records []TestRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn().
			Int64("visit_id", visitID).
			Str("column", kind.Column()).
			Err(err).
			Msg("skipping malformed embedded test JSON")
		return nil
	}
	return records
}

func patientName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// parseOrderDate is lenient the way the original listing was: it accepts
// full timestamps and bare dates, and sorts unparseable values last.
func parseOrderDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
