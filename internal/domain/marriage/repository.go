package marriage

import "context"

type Repository interface {
	Create(ctx context.Context, marriage *Marriage) error
	GetByID(ctx context.Context, id string) (*Marriage, error)
	List(ctx context.Context) ([]Marriage, error)
	Update(ctx context.Context, marriage *Marriage) error
	Delete(ctx context.Context, id string) error
	FindByMember(ctx context.Context, memberID string) (*Marriage, error)
	FindByMembers(ctx context.Context, memberIDs []string) ([]Marriage, error)
	DeleteByMember(ctx context.Context, memberID string) error
}
