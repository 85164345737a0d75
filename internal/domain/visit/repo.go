package visit

import "context"

// NewVisit is everything the repository persists for one created visit,
// summary included; the whole write happens in a single transaction.
type NewVisit struct {
	Input     *CreateInput
	LabJSON   string
	ImageJSON string
	AISummary string
}

type Repository interface {
	Create(ctx context.Context, nv *NewVisit) (int64, error)
	List(ctx context.Context) ([]Visit, error)
	ListByPatient(ctx context.Context, patientID int64) ([]Visit, error)
	GetByID(ctx context.Context, id int64) (*Visit, error)
}
