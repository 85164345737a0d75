package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

type mockRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]*Appointment
	failWith     error
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1, appointments: map[int64]*Appointment{}}
}

func (m *mockRepo) Create(_ context.Context, in *Input) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	id := m.nextID
	m.nextID++
	m.appointments[id] = &Appointment{
		ID:              id,
		PatientID:       in.PatientID,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		AppointmentType: in.AppointmentType,
		Status:          in.Status,
	}
	return id, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, in *Input) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	a, ok := m.appointments[id]
	if !ok {
		return false, nil
	}
	a.AppointmentDate = in.AppointmentDate
	a.AppointmentTime = in.AppointmentTime
	a.Status = in.Status
	return true, nil
}

func (m *mockRepo) Cancel(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	a, ok := m.appointments[id]
	if !ok {
		return false, nil
	}
	a.Status = "cancelled"
	return true, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.appointments[id], nil
}

func (m *mockRepo) List(_ context.Context, _ ListFilter) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []Appointment
	for _, a := range m.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepo) HasConflict(_ context.Context, date, timeOfDay string, exclude int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	for _, a := range m.appointments {
		if a.ID == exclude {
			continue
		}
		if a.Status == "cancelled" || a.Status == "completed" {
			continue
		}
		if a.AppointmentDate == date && a.AppointmentTime == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

func validInput() *Input {
	return &Input{PatientID: 1, AppointmentDate: "2026-09-01", AppointmentTime: "10:00"}
}

func TestCreate_RequiresPatientDateTime(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []Input{
		{AppointmentDate: "2026-09-01", AppointmentTime: "10:00"},
		{PatientID: 1, AppointmentTime: "10:00"},
		{PatientID: 1, AppointmentDate: "2026-09-01"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), &in)
		if apperr.KindOf(err) != apperr.InvalidArgument {
			t.Fatalf("kind = %v, want InvalidArgument for %+v", apperr.KindOf(err), in)
		}
		if err.Error() != "Patient ID, date, and time are required" {
			t.Errorf("message = %q", err.Error())
		}
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := repo.appointments[id]
	if a.AppointmentType != "consultation" {
		t.Errorf("type = %q, want consultation", a.AppointmentType)
	}
	if a.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled", a.Status)
	}
}

func TestCreate_SlotConflict(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := svc.Create(context.Background(), validInput())
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("kind = %v, want Conflict", apperr.KindOf(err))
	}
	if err.Error() != "Time slot already booked" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCreate_CancelledSlotIsFree(t *testing.T) {
	svc := NewService(newMockRepo())
	id, _ := svc.Create(context.Background(), validInput())
	if err := svc.Cancel(context.Background(), id); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("rebooking cancelled slot: %v", err)
	}
}

func TestUpdate_OwnSlotIsNotAConflict(t *testing.T) {
	svc := NewService(newMockRepo())
	id, _ := svc.Create(context.Background(), validInput())

	in := validInput()
	in.Notes = "follow-up"
	if err := svc.Update(context.Background(), id, in); err != nil {
		t.Fatalf("rescheduling onto own slot: %v", err)
	}
}

func TestUpdate_ConflictWithOtherBooking(t *testing.T) {
	svc := NewService(newMockRepo())
	svc.Create(context.Background(), validInput())
	other := &Input{PatientID: 2, AppointmentDate: "2026-09-01", AppointmentTime: "11:00"}
	id, _ := svc.Create(context.Background(), other)

	err := svc.Update(context.Background(), id, validInput())
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("kind = %v, want Conflict", apperr.KindOf(err))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Update(context.Background(), 77, validInput())
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
	if err.Error() != "Appointment not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Cancel(context.Background(), 77)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestCreate_StorageFailure(t *testing.T) {
	repo := newMockRepo()
	repo.failWith = errors.New("locked")
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validInput())
	if apperr.KindOf(err) != apperr.StorageFailure {
		t.Fatalf("kind = %v, want StorageFailure", apperr.KindOf(err))
	}
}
