package relationship

import "context"

type Repository interface {
	Create(ctx context.Context, rel *ParentChildRelationship) error
	GetByID(ctx context.Context, id string) (*ParentChildRelationship, error)
	List(ctx context.Context) ([]ParentChildRelationship, error)
	Update(ctx context.Context, rel *ParentChildRelationship) error
	Delete(ctx context.Context, id string) error
	FindByParentIDs(ctx context.Context, parentIDs []string) ([]ParentChildRelationship, error)
	FindByChildIDs(ctx context.Context, childIDs []string) ([]ParentChildRelationship, error)
	DeleteByMember(ctx context.Context, memberID string) error
}

type TypeRepository interface {
	Create(ctx context.Context, t *Type) error
	GetByID(ctx context.Context, id string) (*Type, error)
	GetByName(ctx context.Context, name string) (*Type, error)
	List(ctx context.Context) ([]Type, error)
	Update(ctx context.Context, t *Type) error
	Delete(ctx context.Context, id string) error
}
