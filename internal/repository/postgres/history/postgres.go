package history

import (
	"context"
	"errors"
	"strings"

	historydomain "family-tree-go/internal/domain/history"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *historydomain.FamilyHistoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) GetByRecordID(ctx context.Context, recordID string) (*historydomain.FamilyHistoryRecord, error) {
	var record historydomain.FamilyHistoryRecord
	err := r.db.WithContext(ctx).
		Where("historical_record_id = ?", recordID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, historydomain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) FindByFamily(ctx context.Context, familyID string) ([]historydomain.FamilyHistoryRecord, error) {
	var records []historydomain.FamilyHistoryRecord
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("start_date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) Search(ctx context.Context, familyID string, filter historydomain.SearchFilter) ([]historydomain.FamilyHistoryRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&historydomain.FamilyHistoryRecord{}).
		Where("family_id = ?", familyID)

	if title := strings.TrimSpace(filter.Title); title != "" {
		query = query.Where("lower(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if filter.StartDate != nil {
		query = query.Where("start_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("start_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []historydomain.FamilyHistoryRecord
	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Order("start_date asc").
		Limit(filter.Limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, record *historydomain.FamilyHistoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, recordID string) error {
	return r.db.WithContext(ctx).
		Where("historical_record_id = ?", recordID).
		Delete(&historydomain.FamilyHistoryRecord{}).Error
}

func (r *PostgresRepository) ExistsByRecordID(ctx context.Context, recordID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&historydomain.FamilyHistoryRecord{}).
		Where("historical_record_id = ?", recordID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
