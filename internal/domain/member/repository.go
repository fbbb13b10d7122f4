package member

import (
	"context"

	"family-tree-go/internal/domain/account"
	"family-tree-go/internal/domain/marriage"
	"family-tree-go/internal/domain/relationship"
)

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, member *Member) error
	// SoftDelete flags the member deleted without removing the row.
	SoftDelete(ctx context.Context, id string) error
	// HardDelete removes the row; used to compensate failed multi-step
	// creation flows.
	HardDelete(ctx context.Context, id string) error
	FindByFamily(ctx context.Context, familyID string) ([]Member, error)
	Search(ctx context.Context, familyID string, filter SearchFilter) ([]Member, int64, error)
}

// Marriages is the slice of the marriage service the member flows consume;
// satisfied by *marriage.Service.
type Marriages interface {
	CreateMarriage(ctx context.Context, input marriage.CreateInput) (*marriage.Marriage, error)
	GetSpouse(ctx context.Context, memberID string) (*marriage.Marriage, error)
	GetAllSpouses(ctx context.Context, memberIDs []string) ([]marriage.Marriage, error)
	DeleteByMember(ctx context.Context, memberID string) error
}

// Relationships is the slice of the relationship service the member flows
// consume; satisfied by *relationship.Service.
type Relationships interface {
	GetTypeByName(ctx context.Context, name string) (*relationship.Type, error)
	CreateRelationship(ctx context.Context, input relationship.CreateInput) (*relationship.ParentChildRelationship, error)
	FindByParentIDs(ctx context.Context, parentIDs []string) ([]relationship.ParentChildRelationship, error)
	FindByChildIDs(ctx context.Context, childIDs []string) ([]relationship.ParentChildRelationship, error)
	DeleteByMember(ctx context.Context, memberID string) error
}

// Accounts provisions logins for newly created members; satisfied by
// *account.Service.
type Accounts interface {
	CreateAccount(ctx context.Context, input account.CreateInput) (*account.Account, error)
	CreateAccountStrict(ctx context.Context, input account.CreateInput) (*account.Account, error)
}
