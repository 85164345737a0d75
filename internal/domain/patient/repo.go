package patient

import (
	"context"

	"github.com/cliniq/cliniq/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, in *Input) (int64, error)
	// Update returns false when no patient with the id exists.
	Update(ctx context.Context, id int64, in *Input) (bool, error)
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, page pagination.Params) ([]Patient, error)
	Count(ctx context.Context) (int, error)
}
