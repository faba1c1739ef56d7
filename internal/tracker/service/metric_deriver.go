package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/logger"
	"golang-rival-tracker/pkg/utils"
)

// MetricValue is one derived metric: a numeric code plus a human label.
type MetricValue struct {
	Name  string
	Value float64
	Label string
}

// MetricRule derives a single metric from the entity's current state.
// Rules are independent and swappable; a rule must not mutate the entity.
type MetricRule interface {
	Name() string
	Derive(ctx context.Context, company *entity.Company) (float64, string)
}

// MetricDeriver runs the fixed rule set producing the five canonical
// metrics for a company.
type MetricDeriver struct {
	rules []MetricRule
}

// NewMetricDeriver creates a MetricDeriver with the default rule set.
func NewMetricDeriver(reviewsRepo repository.ReviewsRepository, log *logger.Logger) *MetricDeriver {
	return &MetricDeriver{
		rules: []MetricRule{
			&pricingRule{},
			&featuresRule{},
			&reviewsRule{reviewsRepo: reviewsRepo, log: log},
			&fundingRule{},
			&hiringRule{},
		},
	}
}

// DeriveAll evaluates every rule against the company and returns the
// results in rule order.
func (d *MetricDeriver) DeriveAll(ctx context.Context, company *entity.Company) []MetricValue {
	values := make([]MetricValue, 0, len(d.rules))
	for _, rule := range d.rules {
		value, label := rule.Derive(ctx, company)
		values = append(values, MetricValue{Name: rule.Name(), Value: value, Label: label})
	}
	return values
}

var (
	firstNumberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

	// Whole-word match so "pro" does not fire on "product" or "approach".
	pricingTierRe = regexp.MustCompile(`\b(pro|professional|business)\b`)
)

type pricingRule struct{}

func (r *pricingRule) Name() string { return entity.MetricPricing }

func (r *pricingRule) Derive(_ context.Context, company *entity.Company) (float64, string) {
	pricing := strings.ToLower(strings.TrimSpace(company.Pricing))
	if pricing == "" {
		return 0, "Onbekend"
	}
	if strings.Contains(pricing, "free") || strings.Contains(pricing, "gratis") {
		return 1, "Gratis/Freemium"
	}
	if match := firstNumberRe.FindString(pricing); match != "" {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
		if err == nil {
			switch {
			case amount < 30:
				return 2, "Lage prijsklasse"
			case amount < 100:
				return 3, "Midden segment"
			default:
				return 4, "Hoge prijsklasse"
			}
		}
	}
	if strings.Contains(pricing, "enterprise") {
		return 5, "Hoge prijsklasse"
	}
	if pricingTierRe.MatchString(pricing) {
		return 3, "Midden segment"
	}
	return 0, "Onbekend"
}

type featuresRule struct{}

func (r *featuresRule) Name() string { return entity.MetricFeatures }

func (r *featuresRule) Derive(_ context.Context, company *entity.Company) (float64, string) {
	if len(company.KeyFeatures) == 0 {
		return 0, "Geen features"
	}
	return float64(len(company.KeyFeatures)), strings.Join(company.KeyFeatures, ", ")
}

var reviewCountRe = regexp.MustCompile(`(?i)(\d+)\s+reviews?`)

type reviewsRule struct {
	reviewsRepo repository.ReviewsRepository
	log         *logger.Logger
}

func (r *reviewsRule) Name() string { return entity.MetricReviews }

func (r *reviewsRule) Derive(ctx context.Context, company *entity.Company) (float64, string) {
	if r.reviewsRepo != nil {
		count, label, err := r.reviewsRepo.GetReviews(ctx, company.Name)
		if err != nil {
			r.log.Warn("reviews lookup failed",
				logger.StringField("company", company.Name),
				logger.ErrorField(err))
		} else if count > 0 {
			return float64(count), label
		}
	}

	combined := company.TractionSignals + " " + company.AISummary
	if m := reviewCountRe.FindStringSubmatch(combined); m != nil {
		count, err := strconv.Atoi(m[1])
		if err == nil && count > 0 {
			return float64(count), fmt.Sprintf("%d reviews vermeld op website", count)
		}
	}
	return 0, "Geen reviews gevonden"
}

type fundingRule struct{}

func (r *fundingRule) Name() string { return entity.MetricFunding }

// The zero code doubles as "unknown": a textual funding fact without a
// parsed amount also encodes as 0.0.
func (r *fundingRule) Derive(_ context.Context, company *entity.Company) (float64, string) {
	if company.Funding != nil {
		return *company.Funding, utils.FormatCurrency(*company.Funding)
	}
	if s := strings.TrimSpace(company.FundingHistory); s != "" {
		return 0, s
	}
	if s := strings.TrimSpace(company.TractionSignals); s != "" {
		return 0, s
	}
	if s := strings.TrimSpace(company.AISummary); s != "" {
		return 0, s
	}
	return 0, "Onbekend"
}

var hiringKeywords = []string{
	"we are hiring",
	"we're hiring",
	"hiring",
	"vacature",
	"vacatures",
	"open positions",
	"join our team",
	"werken bij",
}

type hiringRule struct{}

func (r *hiringRule) Name() string { return entity.MetricHiring }

func (r *hiringRule) Derive(_ context.Context, company *entity.Company) (float64, string) {
	combined := strings.ToLower(company.TractionSignals + " " + company.ProductDescription + " " + company.AISummary)
	for _, kw := range hiringKeywords {
		if strings.Contains(combined, kw) {
			return 3, "Actief aanwervend"
		}
	}
	if company.TeamSize != nil {
		switch {
		case *company.TeamSize >= 200:
			return 2, "Groot team"
		case *company.TeamSize >= 30:
			return 2, "Groeiend team"
		default:
			return 1, "Klein team"
		}
	}
	return 0, "Onbekend"
}
