package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/utils"

	"gorm.io/gorm"
)

// IngestionService coordinates one tracking cycle: match the incoming
// record to a stored company by URL, diff, apply field updates, derive
// metrics and record history, all inside a single transaction.
type IngestionService interface {
	Ingest(ctx context.Context, result *dto.ScrapeResult) (*dto.IngestOutcome, error)
	Refresh(ctx context.Context, companyID uint) (*dto.IngestOutcome, error)
	RefreshAll(ctx context.Context) (dto.RefreshSummary, error)
}

type ingestionService struct {
	db              *gorm.DB
	log             *logger.Logger
	companyRepo     repository.CompanyRepository
	changeEventRepo repository.ChangeEventRepository
	metricRepo      repository.MetricRepository
	auditLogRepo    repository.AuditLogRepository
	websiteRepo     repository.WebsiteRepository
	aiRepo          repository.AIRepository
	detector        *ChangeDetector
	deriver         *MetricDeriver
	recorder        *MetricHistoryRecorder
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	db *gorm.DB,
	log *logger.Logger,
	companyRepo repository.CompanyRepository,
	changeEventRepo repository.ChangeEventRepository,
	metricRepo repository.MetricRepository,
	auditLogRepo repository.AuditLogRepository,
	websiteRepo repository.WebsiteRepository,
	aiRepo repository.AIRepository,
	detector *ChangeDetector,
	deriver *MetricDeriver,
	recorder *MetricHistoryRecorder,
) IngestionService {
	return &ingestionService{
		db:              db,
		log:             log,
		companyRepo:     companyRepo,
		changeEventRepo: changeEventRepo,
		metricRepo:      metricRepo,
		auditLogRepo:    auditLogRepo,
		websiteRepo:     websiteRepo,
		aiRepo:          aiRepo,
		detector:        detector,
		deriver:         deriver,
		recorder:        recorder,
	}
}

// Ingest runs one cycle for a scrape result. An upstream error on the
// result short-circuits before any storage access. All writes happen in
// one transaction; any failure rolls the whole cycle back.
func (s *ingestionService) Ingest(ctx context.Context, result *dto.ScrapeResult) (*dto.IngestOutcome, error) {
	if result == nil {
		return nil, errors.New("nil scrape result")
	}
	if result.Error != "" {
		return nil, fmt.Errorf("upstream fetch failed for %s: %s", result.URL, result.Error)
	}
	if result.Record == nil {
		return nil, fmt.Errorf("scrape result for %s carries no record", result.URL)
	}

	company, err := s.lookupByURL(ctx, result.URL)
	if err != nil {
		return nil, err
	}

	var events []entity.ChangeEvent
	created := company == nil
	if created {
		company = &entity.Company{WebsiteURL: result.URL}
	} else {
		events = s.detector.Detect(company, result.Record)
	}

	applyRecord(company, result.Record)
	metrics := s.deriver.DeriveAll(ctx, company)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companyRepo := s.companyRepo.WithTx(tx)
		if created {
			if err := companyRepo.Create(ctx, company); err != nil {
				return fmt.Errorf("create company: %w", err)
			}
		} else {
			if err := companyRepo.Update(ctx, company); err != nil {
				return fmt.Errorf("update company: %w", err)
			}
		}

		for i := range events {
			events[i].CompanyID = company.ID
			events[i].DetectedAt = time.Now()
		}
		if err := s.changeEventRepo.WithTx(tx).CreateBatch(ctx, events); err != nil {
			return fmt.Errorf("record change events: %w", err)
		}

		metricRepo := s.metricRepo.WithTx(tx)
		recorder := s.recorder.WithTx(tx)
		for _, m := range metrics {
			value := m.Value
			if err := metricRepo.Upsert(ctx, &entity.Metric{
				CompanyID:         company.ID,
				Name:              m.Name,
				Value:             &value,
				Description:       m.Label,
				Active:            true,
				TrackingFrequency: "daily",
				LastUpdated:       time.Now(),
			}); err != nil {
				return fmt.Errorf("upsert metric %s: %w", m.Name, err)
			}
			if err := recorder.Record(ctx, company.ID, m.Name, &value, entity.MetricSourceSnapshot); err != nil {
				return fmt.Errorf("record metric history %s: %w", m.Name, err)
			}
		}

		if len(result.Record.HistoricalMetrics) > 0 {
			if err := recorder.Backfill(ctx, company.ID, result.Record.HistoricalMetrics); err != nil {
				return fmt.Errorf("backfill metric history: %w", err)
			}
		}

		if err := s.auditLogRepo.WithTx(tx).Create(ctx, &entity.AuditLog{
			CompanyID:   company.ID,
			SourceName:  common.SourceAI,
			SourceURL:   result.URL,
			RetrievedAt: time.Now(),
		}); err != nil {
			return fmt.Errorf("write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("ingestion cycle committed",
		logger.Field("company_id", company.ID),
		logger.StringField("company", company.Name),
		logger.IntField("change_events", len(events)),
		logger.Field("created", created))

	return &dto.IngestOutcome{Company: company, Events: events, Created: created}, nil
}

// Refresh fetches the company's website, runs AI extraction and ingests
// the result.
func (s *ingestionService) Refresh(ctx context.Context, companyID uint) (*dto.IngestOutcome, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load company %d: %w", companyID, err)
	}
	if company.WebsiteURL == "" {
		return nil, fmt.Errorf("company %q has no website url to track", company.Name)
	}

	result := s.scrape(ctx, company)
	return s.Ingest(ctx, result)
}

// RefreshAll runs a cycle for every company, each in its own
// transaction. A failing company is logged and skipped; the batch
// continues.
func (s *ingestionService) RefreshAll(ctx context.Context) (dto.RefreshSummary, error) {
	companies, err := s.companyRepo.FindAll(ctx)
	if err != nil {
		return dto.RefreshSummary{}, fmt.Errorf("list companies: %w", err)
	}

	summary := dto.RefreshSummary{Total: len(companies)}
	for _, company := range companies {
		if !utils.ShouldContinue(ctx, s.log) {
			return summary, ctx.Err()
		}
		if _, err := s.Refresh(ctx, company.ID); err != nil {
			summary.Failed++
			s.log.Error("refresh failed, continuing batch",
				logger.Field("company_id", company.ID),
				logger.StringField("company", company.Name),
				logger.ErrorField(err))
			continue
		}
		summary.Succeeded++
	}

	s.log.Info("batch refresh finished",
		logger.IntField("total", summary.Total),
		logger.IntField("succeeded", summary.Succeeded),
		logger.IntField("failed", summary.Failed))
	return summary, nil
}

// scrape fetches page text plus recent news headlines and hands both to
// the AI extractor. Failures surface as the result's Error field so the
// ingest contract can short-circuit uniformly.
func (s *ingestionService) scrape(ctx context.Context, company *entity.Company) *dto.ScrapeResult {
	title, text, err := s.websiteRepo.FetchPageText(ctx, company.WebsiteURL)
	if err != nil {
		return &dto.ScrapeResult{URL: company.WebsiteURL, Error: err.Error()}
	}

	if headlines, err := s.websiteRepo.FetchNewsHeadlines(ctx, company.Name); err != nil {
		s.log.Warn("news headline fetch failed",
			logger.StringField("company", company.Name),
			logger.ErrorField(err))
	} else if len(headlines) > 0 {
		text = text + "\n\nRecente nieuwsberichten:\n- " + strings.Join(headlines, "\n- ")
	}

	extraction, err := s.aiRepo.ExtractCompanyInfo(ctx, company.WebsiteURL, title, text)
	if err != nil {
		return &dto.ScrapeResult{URL: company.WebsiteURL, Error: err.Error()}
	}
	return &dto.ScrapeResult{URL: company.WebsiteURL, Record: extraction.AsRecord()}
}

// lookupByURL treats "not found" as a nil company, any other error as fatal.
func (s *ingestionService) lookupByURL(ctx context.Context, url string) (*entity.Company, error) {
	company, err := s.companyRepo.FindByURL(ctx, url)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup company by url: %w", err)
	}
	return company, nil
}

// applyRecord writes the extracted fields onto the company. The stored
// name is only replaced when the extractor produced a title.
func applyRecord(company *entity.Company, rec *dto.CompanyRecord) {
	if rec.Title != "" {
		company.Name = rec.Title
	}
	if company.Name == "" {
		company.Name = company.WebsiteURL
	}

	company.Headquarters = rec.Headquarters
	company.OfficeLocations = rec.OfficeLocations
	company.TeamSize = rec.TeamSize.Value
	company.Funding = utils.ToDecimal(rec.Funding)
	company.FundingHistory = rec.FundingHistory
	company.TractionSignals = rec.TractionSignals
	company.AISummary = rec.AISummary
	company.ValueProposition = rec.ValueProposition
	company.ProductDescription = rec.ProductDescription
	company.TargetSegment = rec.TargetSegment
	company.Pricing = rec.Pricing
	company.KeyFeatures = append([]string(nil), rec.KeyFeatures...)

	if len(rec.Competitors) > 0 {
		if raw, err := json.Marshal([]string(rec.Competitors)); err == nil {
			company.Competitors = raw
		}
	} else {
		company.Competitors = nil
	}
}
