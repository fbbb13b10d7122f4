package marriage

import (
	"context"
	"errors"

	marriagedomain "family-tree-go/internal/domain/marriage"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, marriage *marriagedomain.Marriage) error {
	return r.db.WithContext(ctx).Create(marriage).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*marriagedomain.Marriage, error) {
	var marriage marriagedomain.Marriage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&marriage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, marriagedomain.ErrMarriageNotFound
		}
		return nil, err
	}
	return &marriage, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]marriagedomain.Marriage, error) {
	var marriages []marriagedomain.Marriage
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&marriages).Error; err != nil {
		return nil, err
	}
	return marriages, nil
}

func (r *PostgresRepository) Update(ctx context.Context, marriage *marriagedomain.Marriage) error {
	return r.db.WithContext(ctx).Save(marriage).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&marriagedomain.Marriage{}, "id = ?", id).Error
}

func (r *PostgresRepository) FindByMember(ctx context.Context, memberID string) (*marriagedomain.Marriage, error) {
	var marriage marriagedomain.Marriage
	err := r.db.WithContext(ctx).
		Where("husband_id = ? OR wife_id = ?", memberID, memberID).
		First(&marriage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, marriagedomain.ErrMarriageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &marriage, nil
}

func (r *PostgresRepository) FindByMembers(ctx context.Context, memberIDs []string) ([]marriagedomain.Marriage, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var marriages []marriagedomain.Marriage
	if err := r.db.WithContext(ctx).
		Where("husband_id IN ? OR wife_id IN ?", memberIDs, memberIDs).
		Find(&marriages).Error; err != nil {
		return nil, err
	}
	return marriages, nil
}

func (r *PostgresRepository) DeleteByMember(ctx context.Context, memberID string) error {
	return r.db.WithContext(ctx).
		Where("husband_id = ? OR wife_id = ?", memberID, memberID).
		Delete(&marriagedomain.Marriage{}).Error
}
