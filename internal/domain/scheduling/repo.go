package scheduling

import "context"

// ListFilter narrows the appointment listing. Zero value lists everything.
type ListFilter struct {
	// Today limits to appointments dated today.
	Today bool
	// Upcoming limits to today-or-later, excluding cancelled.
	Upcoming bool
	// PatientID, when non-zero, limits to one patient.
	PatientID int64
}

type Repository interface {
	Create(ctx context.Context, in *Input) (int64, error)
	// Update returns false when no appointment with the id exists.
	Update(ctx context.Context, id int64, in *Input) (bool, error)
	// Cancel marks the appointment cancelled; false when absent.
	Cancel(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context, f ListFilter) ([]Appointment, error)
	// HasConflict reports whether an active appointment (status not
	// cancelled or completed) already holds the date+time slot. The
	// exclude id skips the appointment being rescheduled.
	HasConflict(ctx context.Context, date, timeOfDay string, exclude int64) (bool, error)
}
