package service

import (
	"context"
	"time"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/utils"

	"gorm.io/gorm"
)

// MetricHistoryRecorder appends datapoints to the metric time series.
// Rows are append-only; repeated backfills may produce duplicate rows
// for the same date, which readers are expected to tolerate.
type MetricHistoryRecorder struct {
	historyRepo repository.MetricHistoryRepository
	log         *logger.Logger
}

// NewMetricHistoryRecorder creates a new MetricHistoryRecorder.
func NewMetricHistoryRecorder(historyRepo repository.MetricHistoryRepository, log *logger.Logger) *MetricHistoryRecorder {
	return &MetricHistoryRecorder{historyRepo: historyRepo, log: log}
}

// WithTx returns a recorder bound to the given transaction.
func (r *MetricHistoryRecorder) WithTx(tx *gorm.DB) *MetricHistoryRecorder {
	return &MetricHistoryRecorder{historyRepo: r.historyRepo.WithTx(tx), log: r.log}
}

// Record appends one datapoint with the current timestamp.
func (r *MetricHistoryRecorder) Record(ctx context.Context, companyID uint, metricName string, value *float64, source string) error {
	return r.historyRepo.Create(ctx, &entity.MetricHistory{
		CompanyID:  companyID,
		MetricName: metricName,
		Value:      value,
		Source:     source,
		RecordedAt: time.Now(),
	})
}

// Backfill inserts AI-reconstructed datapoints for past dates. Entries
// with a missing name or an unparseable date are skipped silently.
func (r *MetricHistoryRecorder) Backfill(ctx context.Context, companyID uint, points []dto.MetricSnapshot) error {
	rows := make([]entity.MetricHistory, 0, len(points))
	for _, p := range points {
		if p.Name == "" || p.Date == "" {
			continue
		}
		recordedAt, ok := utils.ParseISODate(p.Date)
		if !ok {
			r.log.Warn("skipping backfill point with unparseable date",
				logger.StringField("metric", p.Name),
				logger.StringField("date", p.Date))
			continue
		}
		var value *float64
		if f, err := p.Value.Float64(); err == nil {
			value = &f
		}
		rows = append(rows, entity.MetricHistory{
			CompanyID:  companyID,
			MetricName: p.Name,
			Value:      value,
			Source:     entity.MetricSourceInferred,
			RecordedAt: recordedAt,
		})
	}
	return r.historyRepo.CreateBatch(ctx, rows)
}
