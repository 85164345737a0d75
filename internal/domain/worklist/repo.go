package worklist

import "context"

// VisitTests is the slice of a visit row the worklist operates on: the two
// raw JSON columns plus the joined patient identity.
type VisitTests struct {
	VisitID   int64
	PatientID int64
	VisitDate string
	Lab       string
	Imaging   string
	FirstName string
	LastName  string
	Phone     *string
	Email     *string
}

// Raw returns the raw column value for the given kind.
func (v *VisitTests) Raw(kind Kind) string {
	if kind == KindImaging {
		return v.Imaging
	}
	return v.Lab
}

type Repository interface {
	// ListQualifying returns all visits with a non-empty embedded test
	// column, newest visit first, joined with patient identity.
	ListQualifying(ctx context.Context) ([]VisitTests, error)
	// GetVisit returns the visit's test columns, or nil when the visit
	// does not exist.
	GetVisit(ctx context.Context, visitID int64) (*VisitTests, error)
	// SaveTests overwrites one embedded test column of a visit.
	SaveTests(ctx context.Context, visitID int64, kind Kind, raw string) error
}
