package repository

import (
	"context"

	"golang-rival-tracker/internal/entity"

	"gorm.io/gorm"
)

// MetricHistoryRepository defines the interface for the append-only
// metric time series. Rows are never updated or deleted.
type MetricHistoryRepository interface {
	Create(ctx context.Context, row *entity.MetricHistory) error
	CreateBatch(ctx context.Context, rows []entity.MetricHistory) error
	FindByCompanyMetric(ctx context.Context, companyID uint, metricName string) ([]entity.MetricHistory, error)
	WithTx(tx *gorm.DB) MetricHistoryRepository
}

// NewMetricHistoryRepository creates a new GORM-based metric history repository.
func NewMetricHistoryRepository(db *gorm.DB) MetricHistoryRepository {
	return &metricHistoryRepository{db: db}
}

type metricHistoryRepository struct {
	db *gorm.DB
}

func (r *metricHistoryRepository) WithTx(tx *gorm.DB) MetricHistoryRepository {
	return &metricHistoryRepository{db: tx}
}

func (r *metricHistoryRepository) Create(ctx context.Context, row *entity.MetricHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *metricHistoryRepository) CreateBatch(ctx context.Context, rows []entity.MetricHistory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *metricHistoryRepository) FindByCompanyMetric(ctx context.Context, companyID uint, metricName string) ([]entity.MetricHistory, error) {
	var rows []entity.MetricHistory
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND metric_name = ?", companyID, metricName).
		Order("recorded_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
