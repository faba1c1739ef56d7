package strategy

import (
	"context"
	"fmt"
	"strings"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"
)

// MetricBackfillStrategy asks the AI collaborator to reconstruct
// historical metric datapoints from the company's stored profile text
// and appends them to the history log.
type MetricBackfillStrategy struct {
	companyRepo repository.CompanyRepository
	aiRepo      repository.AIRepository
	backfiller  HistoryBackfiller
	log         *logger.Logger
}

// NewMetricBackfillStrategy creates a new MetricBackfillStrategy.
func NewMetricBackfillStrategy(companyRepo repository.CompanyRepository, aiRepo repository.AIRepository, backfiller HistoryBackfiller, log *logger.Logger) *MetricBackfillStrategy {
	return &MetricBackfillStrategy{
		companyRepo: companyRepo,
		aiRepo:      aiRepo,
		backfiller:  backfiller,
		log:         log,
	}
}

// GetType returns the task type this strategy handles.
func (s *MetricBackfillStrategy) GetType() string {
	return common.TaskTypeMetricBackfill
}

func (s *MetricBackfillStrategy) Execute(ctx context.Context, task *entity.TrackTask) error {
	company, err := s.companyRepo.FindByID(ctx, task.CompanyID)
	if err != nil {
		return fmt.Errorf("load company %d: %w", task.CompanyID, err)
	}

	text := profileText(company)
	if text == "" {
		s.log.Info("No profile text to reconstruct history from",
			logger.Field("company_id", company.ID))
		return nil
	}

	points, err := s.aiRepo.ReconstructMetricHistory(ctx, company.Name, text)
	if err != nil {
		return fmt.Errorf("reconstruct metric history: %w", err)
	}
	if len(points) == 0 {
		s.log.Info("AI returned no historical datapoints",
			logger.Field("company_id", company.ID))
		return nil
	}

	if err := s.backfiller.Backfill(ctx, company.ID, points); err != nil {
		return fmt.Errorf("backfill metric history: %w", err)
	}

	s.log.Info("Backfilled metric history",
		logger.Field("company_id", company.ID),
		logger.IntField("points", len(points)))
	return nil
}

func profileText(company *entity.Company) string {
	parts := []string{
		company.FundingHistory,
		company.TractionSignals,
		company.AISummary,
		company.ProductDescription,
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
