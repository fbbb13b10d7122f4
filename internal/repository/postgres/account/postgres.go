package account

import (
	"context"
	"errors"

	accountdomain "family-tree-go/internal/domain/account"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *accountdomain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *PostgresRepository) GetByMemberID(ctx context.Context, memberID string) (*accountdomain.Account, error) {
	return r.getOne(ctx, "member_id = ?", memberID)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*accountdomain.Account, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, token string) (*accountdomain.Account, error) {
	return r.getOne(ctx, "refresh_token = ?", token)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*accountdomain.Account, error) {
	var account accountdomain.Account
	if err := r.db.WithContext(ctx).Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountdomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]accountdomain.Account, error) {
	var accounts []accountdomain.Account
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *PostgresRepository) Update(ctx context.Context, account *accountdomain.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&accountdomain.Account{}, "id = ?", id).Error
}

func (r *PostgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, memberID string, token *string) error {
	return r.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("member_id = ?", memberID).
		Update("refresh_token", token).Error
}
