package repository

import (
	"context"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"

	"gorm.io/gorm"
)

// ChangeEventRepository defines the interface for the append-only change
// event trail.
type ChangeEventRepository interface {
	CreateBatch(ctx context.Context, events []entity.ChangeEvent) error
	FindAll(ctx context.Context, filter dto.ChangeEventFilter) ([]entity.ChangeEvent, error)
	WithTx(tx *gorm.DB) ChangeEventRepository
}

// NewChangeEventRepository creates a new GORM-based change event repository.
func NewChangeEventRepository(db *gorm.DB) ChangeEventRepository {
	return &changeEventRepository{db: db}
}

type changeEventRepository struct {
	db *gorm.DB
}

func (r *changeEventRepository) WithTx(tx *gorm.DB) ChangeEventRepository {
	return &changeEventRepository{db: tx}
}

func (r *changeEventRepository) CreateBatch(ctx context.Context, events []entity.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

func (r *changeEventRepository) FindAll(ctx context.Context, filter dto.ChangeEventFilter) ([]entity.ChangeEvent, error) {
	q := r.db.WithContext(ctx).Model(&entity.ChangeEvent{})
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.Since != nil {
		q = q.Where("detected_at >= ?", *filter.Since)
	}

	var events []entity.ChangeEvent
	if err := q.Order("detected_at DESC, id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
