package service

import (
	"context"
	"errors"
	"testing"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewsRepo struct {
	count int
	label string
	err   error
}

func (f *fakeReviewsRepo) GetReviews(ctx context.Context, companyName string) (int, string, error) {
	return f.count, f.label, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestPricingRule(t *testing.T) {
	rule := &pricingRule{}
	cases := []struct {
		pricing   string
		wantValue float64
		wantLabel string
	}{
		{"", 0, "Onbekend"},
		{"Free plan available", 1, "Gratis/Freemium"},
		{"Gratis voor 3 gebruikers", 1, "Gratis/Freemium"},
		{"€19 per maand", 2, "Lage prijsklasse"},
		{"$45/month", 3, "Midden segment"},
		{"€250 per seat", 4, "Hoge prijsklasse"},
		{"Enterprise pricing on request", 5, "Hoge prijsklasse"},
		{"Business plans beschikbaar", 3, "Midden segment"},
		{"Pro plan on request", 3, "Midden segment"},
		{"Professional tier beschikbaar", 3, "Midden segment"},
		{"contact us about our products", 0, "Onbekend"},
		{"our approach to value", 0, "Onbekend"},
		{"neem contact op", 0, "Onbekend"},
	}
	for _, c := range cases {
		value, label := rule.Derive(context.Background(), &entity.Company{Pricing: c.pricing})
		assert.Equal(t, c.wantValue, value, "pricing %q", c.pricing)
		assert.Equal(t, c.wantLabel, label, "pricing %q", c.pricing)
	}
}

func TestFeaturesRule(t *testing.T) {
	rule := &featuresRule{}

	value, label := rule.Derive(context.Background(), &entity.Company{})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Geen features", label)

	value, label = rule.Derive(context.Background(), &entity.Company{KeyFeatures: []string{"SSO", "API", "Webhooks"}})
	assert.Equal(t, 3.0, value)
	assert.Equal(t, "SSO, API, Webhooks", label)
}

func TestReviewsRulePrefersLookup(t *testing.T) {
	rule := &reviewsRule{
		reviewsRepo: &fakeReviewsRepo{count: 128, label: "128 Google-reviews (4.5★)"},
		log:         testLogger(t),
	}
	value, label := rule.Derive(context.Background(), &entity.Company{Name: "Acme"})
	assert.Equal(t, 128.0, value)
	assert.Equal(t, "128 Google-reviews (4.5★)", label)
}

func TestReviewsRuleTextFallback(t *testing.T) {
	rule := &reviewsRule{
		reviewsRepo: &fakeReviewsRepo{err: errors.New("quota exceeded")},
		log:         testLogger(t),
	}
	value, label := rule.Derive(context.Background(), &entity.Company{
		Name:            "Acme",
		TractionSignals: "Meer dan 300 reviews op Trustpilot",
	})
	assert.Equal(t, 300.0, value)
	assert.Contains(t, label, "300")
}

func TestReviewsRuleNoData(t *testing.T) {
	rule := &reviewsRule{reviewsRepo: &fakeReviewsRepo{}, log: testLogger(t)}
	value, label := rule.Derive(context.Background(), &entity.Company{Name: "Acme"})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Geen reviews gevonden", label)
}

func TestFundingRule(t *testing.T) {
	rule := &fundingRule{}

	funding := 2_000_000.0
	value, label := rule.Derive(context.Background(), &entity.Company{Funding: &funding})
	assert.Equal(t, 2_000_000.0, value)
	assert.Equal(t, "€2.000.000", label)

	value, label = rule.Derive(context.Background(), &entity.Company{FundingHistory: "Seed ronde in 2022"})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Seed ronde in 2022", label)

	value, label = rule.Derive(context.Background(), &entity.Company{TractionSignals: "Serie A aangekondigd"})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Serie A aangekondigd", label)

	value, label = rule.Derive(context.Background(), &entity.Company{AISummary: "Acme raised a €2M seed round in 2023."})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Acme raised a €2M seed round in 2023.", label)

	value, label = rule.Derive(context.Background(), &entity.Company{})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Onbekend", label)
}

func TestHiringRule(t *testing.T) {
	rule := &hiringRule{}

	value, label := rule.Derive(context.Background(), &entity.Company{TractionSignals: "We are hiring in Amsterdam"})
	assert.Equal(t, 3.0, value)
	assert.Equal(t, "Actief aanwervend", label)

	size := 250
	value, label = rule.Derive(context.Background(), &entity.Company{TeamSize: &size})
	assert.Equal(t, 2.0, value)
	assert.Equal(t, "Groot team", label)

	size = 60
	_, label = rule.Derive(context.Background(), &entity.Company{TeamSize: &size})
	assert.Equal(t, "Groeiend team", label)

	size = 12
	value, label = rule.Derive(context.Background(), &entity.Company{TeamSize: &size})
	assert.Equal(t, 1.0, value)
	assert.Equal(t, "Klein team", label)

	value, label = rule.Derive(context.Background(), &entity.Company{})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, "Onbekend", label)
}

func TestDeriveAllProducesFiveMetrics(t *testing.T) {
	deriver := NewMetricDeriver(&fakeReviewsRepo{}, testLogger(t))
	values := deriver.DeriveAll(context.Background(), &entity.Company{Name: "Acme"})

	require.Len(t, values, 5)
	names := make([]string, 0, len(values))
	for _, v := range values {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{
		entity.MetricPricing,
		entity.MetricFeatures,
		entity.MetricReviews,
		entity.MetricFunding,
		entity.MetricHiring,
	}, names)
}
