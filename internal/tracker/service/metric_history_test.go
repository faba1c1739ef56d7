package service

import (
	"context"
	"encoding/json"
	"testing"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeHistoryRepo struct {
	rows []entity.MetricHistory
}

func (f *fakeHistoryRepo) Create(ctx context.Context, row *entity.MetricHistory) error {
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeHistoryRepo) CreateBatch(ctx context.Context, rows []entity.MetricHistory) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeHistoryRepo) FindByCompanyMetric(ctx context.Context, companyID uint, metricName string) ([]entity.MetricHistory, error) {
	return f.rows, nil
}

func (f *fakeHistoryRepo) WithTx(tx *gorm.DB) repository.MetricHistoryRepository {
	return f
}

func TestRecorderRecord(t *testing.T) {
	repo := &fakeHistoryRepo{}
	rec := NewMetricHistoryRecorder(repo, testLogger(t))

	value := 3.0
	require.NoError(t, rec.Record(context.Background(), 7, entity.MetricPricing, &value, entity.MetricSourceSnapshot))

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, uint(7), row.CompanyID)
	assert.Equal(t, entity.MetricPricing, row.MetricName)
	assert.Equal(t, 3.0, *row.Value)
	assert.Equal(t, entity.MetricSourceSnapshot, row.Source)
	assert.False(t, row.RecordedAt.IsZero())
}

func TestRecorderBackfill(t *testing.T) {
	repo := &fakeHistoryRepo{}
	rec := NewMetricHistoryRecorder(repo, testLogger(t))

	points := []dto.MetricSnapshot{
		{Name: "Funding", Date: "2023-06-01", Value: json.Number("500000")},
		{Name: "Funding", Date: "2024-01-15T00:00:00Z", Value: json.Number("2000000")},
		{Name: "Hiring", Date: "ergens in 2023", Value: json.Number("2")},
		{Name: "", Date: "2023-06-01", Value: json.Number("1")},
		{Name: "Reviews", Date: "2023-06-01", Value: json.Number("")},
	}

	require.NoError(t, rec.Backfill(context.Background(), 7, points))

	// The unparseable date and missing name are skipped silently.
	require.Len(t, repo.rows, 3)
	for _, row := range repo.rows {
		assert.Equal(t, entity.MetricSourceInferred, row.Source)
		assert.Equal(t, uint(7), row.CompanyID)
	}
	assert.Equal(t, 500000.0, *repo.rows[0].Value)
	assert.Equal(t, 2023, repo.rows[0].RecordedAt.Year())
	// A non-numeric value degrades to a null datapoint, not an error.
	assert.Nil(t, repo.rows[2].Value)
}

func TestRecorderBackfillAllInvalid(t *testing.T) {
	repo := &fakeHistoryRepo{}
	rec := NewMetricHistoryRecorder(repo, testLogger(t))

	points := []dto.MetricSnapshot{
		{Name: "Funding", Date: "onbekend"},
		{Name: "", Date: "2023-06-01"},
	}
	require.NoError(t, rec.Backfill(context.Background(), 7, points))
	assert.Empty(t, repo.rows)
}
