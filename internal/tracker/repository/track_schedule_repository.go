package repository

import (
	"context"
	"time"

	"golang-rival-tracker/internal/entity"

	"gorm.io/gorm"
)

// TrackScheduleRepository defines the interface for tracking schedules.
type TrackScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.TrackSchedule) error
	FindDue(ctx context.Context) ([]entity.TrackSchedule, error)
	FindByCompany(ctx context.Context, companyID uint) ([]entity.TrackSchedule, error)
	Update(ctx context.Context, schedule *entity.TrackSchedule) error
	WithTx(tx *gorm.DB) TrackScheduleRepository
}

// NewTrackScheduleRepository creates a new GORM-based schedule repository.
func NewTrackScheduleRepository(db *gorm.DB) TrackScheduleRepository {
	return &trackScheduleRepository{db: db}
}

type trackScheduleRepository struct {
	db *gorm.DB
}

func (r *trackScheduleRepository) WithTx(tx *gorm.DB) TrackScheduleRepository {
	return &trackScheduleRepository{db: tx}
}

func (r *trackScheduleRepository) Create(ctx context.Context, schedule *entity.TrackSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// FindDue returns active schedules whose next execution has passed or was
// never computed.
func (r *trackScheduleRepository) FindDue(ctx context.Context) ([]entity.TrackSchedule, error) {
	var schedules []entity.TrackSchedule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (next_execution IS NULL OR next_execution <= ?)", true, time.Now()).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *trackScheduleRepository) FindByCompany(ctx context.Context, companyID uint) ([]entity.TrackSchedule, error) {
	var schedules []entity.TrackSchedule
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *trackScheduleRepository) Update(ctx context.Context, schedule *entity.TrackSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}
