package member

import (
	"context"
	"errors"
	"strings"

	memberdomain "family-tree-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	var member memberdomain.Member
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, memberdomain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) Update(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ? AND is_deleted = false", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return memberdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&memberdomain.Member{}, "id = ?", id).Error
}

func (r *PostgresRepository) FindByFamily(ctx context.Context, familyID string) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).
		Where("family_id = ? AND is_deleted = false", familyID).
		Order("generation asc, created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Search filters within a family by name fragment, account email, life status
// and gender. Email lives on the accounts table, hence the join.
func (r *PostgresRepository) Search(ctx context.Context, familyID string, filter memberdomain.SearchFilter) ([]memberdomain.Member, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("members.family_id = ? AND members.is_deleted = false", familyID)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(members.first_name) LIKE ? OR lower(members.middle_name) LIKE ? OR lower(members.last_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Email != "" {
		query = query.
			Joins("join accounts on accounts.member_id = members.id").
			Where("lower(accounts.email) LIKE ?", "%"+strings.ToLower(filter.Email)+"%")
	}
	if filter.IsAlive != nil {
		query = query.Where("members.is_alive = ?", *filter.IsAlive)
	}
	if filter.Gender != "" {
		query = query.Where("members.gender = ?", filter.Gender)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []memberdomain.Member
	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Order("members.generation asc, members.created_at asc").
		Limit(filter.Limit).
		Offset(offset).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}
