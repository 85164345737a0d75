package dashboard

import "context"

type Repository interface {
	CountPatients(ctx context.Context) (int, error)
	CountTodaysVisits(ctx context.Context) (int, error)
	// CountTodaysAppointments excludes cancelled bookings.
	CountTodaysAppointments(ctx context.Context) (int, error)
}
