package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/utils"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportService renders a company profile or its audit trail in a flat,
// machine-readable form.
type ExportService interface {
	ExportProfile(ctx context.Context, companyID uint, format string) ([]byte, string, error)
	ExportAuditLog(ctx context.Context, companyID uint, format string) ([]byte, string, error)
}

type exportService struct {
	companyRepo  repository.CompanyRepository
	metricRepo   repository.MetricRepository
	auditLogRepo repository.AuditLogRepository
}

// NewExportService creates a new ExportService.
func NewExportService(companyRepo repository.CompanyRepository, metricRepo repository.MetricRepository, auditLogRepo repository.AuditLogRepository) ExportService {
	return &exportService{companyRepo: companyRepo, metricRepo: metricRepo, auditLogRepo: auditLogRepo}
}

// ExportProfile returns the rendered profile plus its content type.
func (s *exportService) ExportProfile(ctx context.Context, companyID uint, format string) ([]byte, string, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	metrics, err := s.metricRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	fields := profileFields(company, metrics)

	switch format {
	case FormatJSON, "":
		out := make(map[string]string, len(fields))
		for _, f := range fields {
			out[f.key] = f.value
		}
		data, err := json.MarshalIndent(out, "", "  ")
		return data, "application/json", err
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"field", "value"})
		for _, f := range fields {
			_ = w.Write([]string{f.key, f.value})
		}
		w.Flush()
		return buf.Bytes(), "text/csv", w.Error()
	case FormatText:
		var b strings.Builder
		for _, f := range fields {
			fmt.Fprintf(&b, "%s: %s\n", f.key, f.value)
		}
		return []byte(b.String()), "text/plain", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportAuditLog returns the data-acquisition trail for one company.
func (s *exportService) ExportAuditLog(ctx context.Context, companyID uint, format string) ([]byte, string, error) {
	// An unknown company must surface as not found, not as an empty trail.
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, "", err
	}
	logs, err := s.auditLogRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(logs, "", "  ")
		return data, "application/json", err
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"id", "company_id", "source_name", "source_url", "retrieved_at"})
		for _, l := range logs {
			_ = w.Write([]string{
				strconv.FormatUint(uint64(l.ID), 10),
				strconv.FormatUint(uint64(l.CompanyID), 10),
				l.SourceName,
				l.SourceURL,
				l.RetrievedAt.Format("2006-01-02 15:04:05"),
			})
		}
		w.Flush()
		return buf.Bytes(), "text/csv", w.Error()
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

type profileField struct {
	key   string
	value string
}

func profileFields(company *entity.Company, metrics []entity.Metric) []profileField {
	fields := []profileField{
		{"name", company.Name},
		{"website_url", company.WebsiteURL},
		{"headquarters", company.Headquarters},
		{"office_locations", company.OfficeLocations},
		{"team_size", formatIntPtr(company.TeamSize)},
		{"funding", formatFunding(company.Funding)},
		{"funding_history", company.FundingHistory},
		{"traction_signals", company.TractionSignals},
		{"ai_summary", company.AISummary},
		{"value_proposition", company.ValueProposition},
		{"product_description", company.ProductDescription},
		{"target_segment", company.TargetSegment},
		{"pricing", company.Pricing},
		{"key_features", strings.Join(company.KeyFeatures, ", ")},
	}
	if company.Sector != nil {
		fields = append(fields, profileField{"sector", company.Sector.Name})
	}
	for _, m := range metrics {
		fields = append(fields, profileField{"metric_" + strings.ToLower(m.Name), m.Description})
	}
	return fields
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFunding(v *float64) string {
	if v == nil {
		return ""
	}
	return utils.FormatCurrency(*v)
}
