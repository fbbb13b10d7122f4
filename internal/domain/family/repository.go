package family

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, family *Family) error
	GetByID(ctx context.Context, id string) (*Family, error)
	UpdateName(ctx context.Context, id, name string) error
	UpdateAdminAccount(ctx context.Context, id, accountID string) error
	Delete(ctx context.Context, id string) error
}
