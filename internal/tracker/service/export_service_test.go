package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.company, nil
}
func (f *fakeCompanyRepo) FindAll(ctx context.Context) ([]entity.Company, error) {
	if f.company == nil {
		return nil, nil
	}
	return []entity.Company{*f.company}, nil
}
func (f *fakeCompanyRepo) FindByURL(ctx context.Context, url string) (*entity.Company, error) {
	if f.company == nil || f.company.WebsiteURL != url {
		return nil, gorm.ErrRecordNotFound
	}
	return f.company, nil
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) Delete(ctx context.Context, id uint) error           { return nil }
func (f *fakeCompanyRepo) WithTx(tx *gorm.DB) repository.CompanyRepository     { return f }

type fakeMetricRepo struct {
	metrics []entity.Metric
}

func (f *fakeMetricRepo) Upsert(ctx context.Context, m *entity.Metric) error { return nil }
func (f *fakeMetricRepo) FindByCompany(ctx context.Context, companyID uint) ([]entity.Metric, error) {
	return f.metrics, nil
}
func (f *fakeMetricRepo) WithTx(tx *gorm.DB) repository.MetricRepository { return f }

type fakeAuditRepo struct {
	logs []entity.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, l *entity.AuditLog) error { return nil }
func (f *fakeAuditRepo) FindByCompany(ctx context.Context, companyID uint) ([]entity.AuditLog, error) {
	return f.logs, nil
}
func (f *fakeAuditRepo) WithTx(tx *gorm.DB) repository.AuditLogRepository { return f }

func newTestExportService() ExportService {
	funding := 2_000_000.0
	return NewExportService(
		&fakeCompanyRepo{company: &entity.Company{
			ID:          1,
			Name:        "Acme",
			WebsiteURL:  "https://acme.example",
			Funding:     &funding,
			KeyFeatures: []string{"SSO", "API"},
		}},
		&fakeMetricRepo{metrics: []entity.Metric{
			{CompanyID: 1, Name: entity.MetricPricing, Description: "Midden segment"},
		}},
		&fakeAuditRepo{logs: []entity.AuditLog{
			{ID: 1, CompanyID: 1, SourceName: "ai_extraction", SourceURL: "https://acme.example", RetrievedAt: time.Now()},
		}},
	)
}

func TestExportProfileJSON(t *testing.T) {
	svc := newTestExportService()

	data, contentType, err := svc.ExportProfile(context.Background(), 1, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var out map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Acme", out["name"])
	assert.Equal(t, "€2.000.000", out["funding"])
	assert.Equal(t, "SSO, API", out["key_features"])
	assert.Equal(t, "Midden segment", out["metric_pricing"])
}

func TestExportProfileCSV(t *testing.T) {
	svc := newTestExportService()

	data, contentType, err := svc.ExportProfile(context.Background(), 1, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"field", "value"}, records[0])
	assert.Equal(t, []string{"name", "Acme"}, records[1])
}

func TestExportProfileText(t *testing.T) {
	svc := newTestExportService()

	data, contentType, err := svc.ExportProfile(context.Background(), 1, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.Contains(t, string(data), "name: Acme")
}

func TestExportProfileUnsupportedFormat(t *testing.T) {
	svc := newTestExportService()

	_, _, err := svc.ExportProfile(context.Background(), 1, "xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportProfileNotFound(t *testing.T) {
	svc := newTestExportService()

	_, _, err := svc.ExportProfile(context.Background(), 99, FormatJSON)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExportAuditLogCSV(t *testing.T) {
	svc := newTestExportService()

	data, contentType, err := svc.ExportAuditLog(context.Background(), 1, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ai_extraction", records[1][2])
}

func TestExportAuditLogUnknownCompany(t *testing.T) {
	svc := newTestExportService()

	_, _, err := svc.ExportAuditLog(context.Background(), 99, FormatJSON)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
