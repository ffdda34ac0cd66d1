package user

import "context"

// Directory is the lookup contract the entitlement engine consumes. Read
// methods return (nil, nil) when no user matches.
type Directory interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}
