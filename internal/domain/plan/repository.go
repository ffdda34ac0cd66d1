package plan

import "context"

// Repository handles plan persistence. Read methods return (nil, nil) when
// no plan matches.
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySID(ctx context.Context, sid string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error

	ListActive(ctx context.Context) ([]*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
