package worklist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type mockRepo struct {
	mu      sync.Mutex
	visits  map[int64]*VisitTests
	listErr error
	getErr  error
	saveErr error
	saves   int
}

func newMockRepo(visits ...VisitTests) *mockRepo {
	m := &mockRepo{visits: make(map[int64]*VisitTests)}
	for i := range visits {
		v := visits[i]
		m.visits[v.VisitID] = &v
	}
	return m
}

func (m *mockRepo) ListQualifying(ctx context.Context) ([]VisitTests, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []VisitTests
	for _, v := range m.visits {
		qualifies := func(raw string) bool { return raw != "" && raw != "[]" }
		if qualifies(v.Lab) || qualifies(v.Imaging) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockRepo) GetVisit(ctx context.Context, visitID int64) (*VisitTests, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.visits[visitID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *mockRepo) SaveTests(ctx context.Context, visitID int64, kind Kind, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	v, ok := m.visits[visitID]
	if !ok {
		return errors.New("no such visit")
	}
	if kind == KindImaging {
		v.Imaging = raw
	} else {
		v.Lab = raw
	}
	m.saves++
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zerolog.Nop())
}

func strptr(s string) *string { return &s }

func TestList_FlattensBothKinds(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID:   12,
		PatientID: 3,
		VisitDate: "2026-08-29 10:00:00",
		Lab:       `[{"test_name":"CBC"},{"test_name":"Lipid Panel","status":"completed","report_date":"2026-08-28"}]`,
		Imaging:   `[{"test_name":"Chest X-Ray","body_part":"chest"}]`,
		FirstName: "Ayesha",
		LastName:  "Khan",
		Phone:     strptr("555-0101"),
	})

	items, err := newTestService(repo).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	byID := make(map[string]Item)
	for _, it := range items {
		byID[it.ID] = it
	}

	cbc, ok := byID["12_lab_0"]
	if !ok {
		t.Fatal("missing item 12_lab_0")
	}
	if cbc.Status != "pending" {
		t.Errorf("default status = %q, want pending", cbc.Status)
	}
	if cbc.Priority != "normal" {
		t.Errorf("default priority = %q, want normal", cbc.Priority)
	}
	if cbc.OrderDate != "2026-08-29 10:00:00" {
		t.Errorf("order date = %q, want visit date", cbc.OrderDate)
	}
	if cbc.PatientName != "Ayesha Khan" {
		t.Errorf("patient name = %q", cbc.PatientName)
	}
	if cbc.ReportDate != nil {
		t.Errorf("report date = %v, want nil", *cbc.ReportDate)
	}

	lipid := byID["12_lab_1"]
	if lipid.Status != "completed" {
		t.Errorf("lipid status = %q", lipid.Status)
	}
	if lipid.ReportDate == nil || *lipid.ReportDate != "2026-08-28" {
		t.Errorf("lipid report date = %v", lipid.ReportDate)
	}

	xray := byID["12_imaging_0"]
	if xray.TestType != "imaging" {
		t.Errorf("xray test_type = %q, want imaging", xray.TestType)
	}
}

func TestList_SkipsNamelessRecords(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID:   5,
		VisitDate: "2026-08-29",
		Lab:       `[{"test_name":""},{"test_name":"HbA1c"},{}]`,
	})

	items, err := newTestService(repo).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	// The skipped record still occupies its slot: the survivor keeps
	// index 1.
	if items[0].ID != "5_lab_1" {
		t.Errorf("id = %q, want 5_lab_1", items[0].ID)
	}
}

func TestList_MalformedImagingLeavesLabIntact(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID:   9,
		VisitDate: "2026-08-29",
		Lab:       `[{"test_name":"CBC"}]`,
		Imaging:   `{not json`,
	})

	items, err := newTestService(repo).List(context.Background())
	if err != nil {
		t.Fatalf("List should not fail on malformed JSON: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "9_lab_0" {
		t.Errorf("id = %q", items[0].ID)
	}
}

func TestList_SortsNewestFirst(t *testing.T) {
	repo := newMockRepo(
		VisitTests{VisitID: 1, VisitDate: "2026-08-01 09:00:00", Lab: `[{"test_name":"Old"}]`},
		VisitTests{VisitID: 2, VisitDate: "2026-08-20 09:00:00", Lab: `[{"test_name":"New"}]`},
		VisitTests{VisitID: 3, VisitDate: "2026-08-10 09:00:00", Lab: `[{"test_name":"Mid"}]`},
	)

	items, err := newTestService(repo).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{"New", "Mid", "Old"}
	for i, name := range want {
		if items[i].TestName != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].TestName, name)
		}
	}
}

func TestList_StorageFailure(t *testing.T) {
	repo := newMockRepo()
	repo.listErr = errors.New("disk io")

	_, err := newTestService(repo).List(context.Background())
	if apperr.KindOf(err) != apperr.StorageFailure {
		t.Errorf("kind = %v, want StorageFailure", apperr.KindOf(err))
	}
}

func TestUpdate_CompletedSetsReportDate(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID: 42,
		Lab:     `[{"test_name":"CBC","status":"pending"}]`,
	})
	svc := newTestService(repo)
	svc.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	})

	err := svc.Update(context.Background(), UpdateRequest{
		TestID:  "42_lab_0",
		Status:  "completed",
		Results: "WBC 7.2",
		Notes:   "reviewed",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	var records []TestRecord
	if err := json.Unmarshal([]byte(repo.visits[42].Lab), &records); err != nil {
		t.Fatalf("decoding saved column: %v", err)
	}
	rec := records[0]
	if rec.Status != "completed" || rec.Results != "WBC 7.2" || rec.Notes != "reviewed" {
		t.Errorf("record = %+v", rec)
	}
	if rec.ReportDate == nil || *rec.ReportDate != "2026-08-30" {
		t.Errorf("report date = %v, want 2026-08-30", rec.ReportDate)
	}
}

func TestUpdate_NonCompletedClearsReportDate(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID: 42,
		Lab:     `[{"test_name":"CBC","status":"completed","report_date":"2026-08-28"}]`,
	})
	svc := newTestService(repo)

	if err := svc.Update(context.Background(), UpdateRequest{TestID: "42_lab_0", Status: "in_progress"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var records []TestRecord
	json.Unmarshal([]byte(repo.visits[42].Lab), &records)
	if records[0].ReportDate != nil {
		t.Errorf("report date = %v, want nil", *records[0].ReportDate)
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID: 42,
		Lab:     `[{"test_name":"CBC"}]`,
	})
	svc := newTestService(repo)
	req := UpdateRequest{TestID: "42_lab_0", Status: "completed", Results: "ok"}

	if err := svc.Update(context.Background(), req); err != nil {
		t.Fatalf("first update: %v", err)
	}
	first := repo.visits[42].Lab
	if err := svc.Update(context.Background(), req); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if repo.visits[42].Lab != first {
		t.Errorf("second identical update changed the column:\n%s\n%s", first, repo.visits[42].Lab)
	}
}

func TestUpdate_VisitNotFound(t *testing.T) {
	svc := newTestService(newMockRepo())

	err := svc.Update(context.Background(), UpdateRequest{TestID: "42_lab_0", Status: "completed"})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
	if err.Error() != "Visit not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUpdate_IndexOutOfRange(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID: 42,
		Lab:     `[{"test_name":"CBC"}]`,
	})
	svc := newTestService(repo)

	err := svc.Update(context.Background(), UpdateRequest{TestID: "42_lab_5", Status: "completed"})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
	if err.Error() != "Test not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUpdate_MalformedColumnActsAsEmpty(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID: 42,
		Lab:     `{broken`,
	})
	svc := newTestService(repo)

	err := svc.Update(context.Background(), UpdateRequest{TestID: "42_lab_0", Status: "completed"})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound (index into empty array)", apperr.KindOf(err))
	}
}

func TestUpdate_InvalidID(t *testing.T) {
	svc := newTestService(newMockRepo())

	err := svc.Update(context.Background(), UpdateRequest{TestID: "42_lab", Status: "completed"})
	if apperr.KindOf(err) != apperr.InvalidArgument {
		t.Errorf("kind = %v, want InvalidArgument", apperr.KindOf(err))
	}
}

func TestUpdate_ConcurrentIndicesBothPersist(t *testing.T) {
	repo := newMockRepo(VisitTests{
		VisitID: 42,
		Lab:     `[{"test_name":"CBC"},{"test_name":"Lipid Panel"}]`,
	})
	svc := newTestService(repo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = svc.Update(context.Background(), UpdateRequest{
				TestID: TestID{VisitID: 42, Kind: KindLab, Index: idx}.String(),
				Status: "completed",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	var records []TestRecord
	if err := json.Unmarshal([]byte(repo.visits[42].Lab), &records); err != nil {
		t.Fatalf("decoding saved column: %v", err)
	}
	for i, rec := range records {
		if rec.Status != "completed" {
			t.Errorf("record %d status = %q, lost a concurrent write", i, rec.Status)
		}
	}
}

func TestPendingCounts(t *testing.T) {
	repo := newMockRepo(
		VisitTests{
			VisitID: 1,
			Lab:     `[{"test_name":"CBC"},{"test_name":"Lipid","status":"completed"},{"test_name":""}]`,
			Imaging: `[{"test_name":"Chest X-Ray"}]`,
		},
		VisitTests{
			VisitID: 2,
			Imaging: `[{"test_name":"MRI","status":"in_progress"},{"test_name":"CT","status":"pending"}]`,
		},
	)

	lab, imaging, err := newTestService(repo).PendingCounts(context.Background())
	if err != nil {
		t.Fatalf("PendingCounts: %v", err)
	}
	if lab != 1 {
		t.Errorf("pending lab = %d, want 1", lab)
	}
	if imaging != 2 {
		t.Errorf("pending imaging = %d, want 2", imaging)
	}
}
