package event

import (
	"context"
	"errors"

	eventdomain "family-tree-go/internal/domain/event"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *eventdomain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*eventdomain.Event, error) {
	var event eventdomain.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]eventdomain.Event, error) {
	var events []eventdomain.Event
	if err := r.db.WithContext(ctx).
		Order("gregorian_event_date asc nulls last, created_at asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) Update(ctx context.Context, event *eventdomain.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&eventdomain.Event{}, "id = ?", id).Error
}
