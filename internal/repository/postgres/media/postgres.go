package media

import (
	"context"
	"errors"

	mediadomain "family-tree-go/internal/domain/media"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, media *mediadomain.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *PostgresRepository) CreateMany(ctx context.Context, media []mediadomain.Media) error {
	if len(media) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&media).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*mediadomain.Media, error) {
	var media mediadomain.Media
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mediadomain.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]mediadomain.Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var media []mediadomain.Media
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]mediadomain.Media, error) {
	var media []mediadomain.Media
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *PostgresRepository) FindByOwners(ctx context.Context, ownerIDs []string, ownerType mediadomain.OwnerType) ([]mediadomain.Media, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var media []mediadomain.Media
	if err := r.db.WithContext(ctx).
		Where("owner_id IN ? AND owner_type = ?", ownerIDs, ownerType).
		Order("created_at asc").
		Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *PostgresRepository) Update(ctx context.Context, media *mediadomain.Media) error {
	return r.db.WithContext(ctx).Save(media).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&mediadomain.Media{}, "id = ?", id).Error
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&mediadomain.Media{}).Error
}
