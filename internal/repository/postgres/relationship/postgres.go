package relationship

import (
	"context"
	"errors"

	reldomain "family-tree-go/internal/domain/relationship"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rel *reldomain.ParentChildRelationship) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*reldomain.ParentChildRelationship, error) {
	var rel reldomain.ParentChildRelationship
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reldomain.ErrRelationshipNotFound
		}
		return nil, err
	}
	return &rel, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]reldomain.ParentChildRelationship, error) {
	var rels []reldomain.ParentChildRelationship
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rel *reldomain.ParentChildRelationship) error {
	return r.db.WithContext(ctx).Save(rel).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&reldomain.ParentChildRelationship{}, "id = ?", id).Error
}

func (r *PostgresRepository) FindByParentIDs(ctx context.Context, parentIDs []string) ([]reldomain.ParentChildRelationship, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var rels []reldomain.ParentChildRelationship
	if err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("birth_order asc").
		Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *PostgresRepository) FindByChildIDs(ctx context.Context, childIDs []string) ([]reldomain.ParentChildRelationship, error) {
	if len(childIDs) == 0 {
		return nil, nil
	}
	var rels []reldomain.ParentChildRelationship
	if err := r.db.WithContext(ctx).
		Where("child_id IN ?", childIDs).
		Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (r *PostgresRepository) DeleteByMember(ctx context.Context, memberID string) error {
	return r.db.WithContext(ctx).
		Where("parent_id = ? OR child_id = ?", memberID, memberID).
		Delete(&reldomain.ParentChildRelationship{}).Error
}

// TypePostgresRepository serves the relationship_types lookup table.
type TypePostgresRepository struct {
	db *gorm.DB
}

func NewTypePostgres(db *gorm.DB) *TypePostgresRepository {
	return &TypePostgresRepository{db: db}
}

func (r *TypePostgresRepository) Create(ctx context.Context, t *reldomain.Type) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TypePostgresRepository) GetByID(ctx context.Context, id string) (*reldomain.Type, error) {
	var t reldomain.Type
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reldomain.ErrTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TypePostgresRepository) GetByName(ctx context.Context, name string) (*reldomain.Type, error) {
	var t reldomain.Type
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reldomain.ErrTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TypePostgresRepository) List(ctx context.Context) ([]reldomain.Type, error) {
	var types []reldomain.Type
	if err := r.db.WithContext(ctx).Order("name asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *TypePostgresRepository) Update(ctx context.Context, t *reldomain.Type) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TypePostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&reldomain.Type{}, "id = ?", id).Error
}
