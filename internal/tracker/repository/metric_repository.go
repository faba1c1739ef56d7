package repository

import (
	"context"

	"golang-rival-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetricRepository defines the interface for the current-value metric cache.
type MetricRepository interface {
	Upsert(ctx context.Context, metric *entity.Metric) error
	FindByCompany(ctx context.Context, companyID uint) ([]entity.Metric, error)
	WithTx(tx *gorm.DB) MetricRepository
}

// NewMetricRepository creates a new GORM-based metric repository.
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

type metricRepository struct {
	db *gorm.DB
}

func (r *metricRepository) WithTx(tx *gorm.DB) MetricRepository {
	return &metricRepository{db: tx}
}

// Upsert creates the (company, name) row or overwrites its value,
// description and timestamp. One row per pair, always the latest state.
func (r *metricRepository) Upsert(ctx context.Context, metric *entity.Metric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "description", "active", "tracking_frequency", "last_updated",
		}),
	}).Create(metric).Error
}

func (r *metricRepository) FindByCompany(ctx context.Context, companyID uint) ([]entity.Metric, error) {
	var metrics []entity.Metric
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
