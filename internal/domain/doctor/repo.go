package doctor

import "context"

type Repository interface {
	Create(ctx context.Context, in *Input) (int64, error)
	Update(ctx context.Context, id int64, in *Input) (bool, error)
	// Deactivate clears the active flag; false when absent.
	Deactivate(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context, activeOnly bool) ([]Doctor, error)
}
