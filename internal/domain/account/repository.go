package account

import "context"

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByMemberID(ctx context.Context, memberID string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByRefreshToken(ctx context.Context, token string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateRefreshToken(ctx context.Context, memberID string, token *string) error
}
