package service

import (
	"context"
	"testing"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestShortCircuitsOnUpstreamError(t *testing.T) {
	// No storage dependencies are touched when the upstream fetch failed,
	// so the nil repositories are never dereferenced.
	svc := NewIngestionService(nil, testLogger(t), nil, nil, nil, nil, nil, nil,
		NewChangeDetector(), nil, nil)

	_, err := svc.Ingest(context.Background(), &dto.ScrapeResult{
		URL:   "https://acme.example",
		Error: "fetch timeout",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch timeout")
}

func TestIngestRejectsMissingRecord(t *testing.T) {
	svc := NewIngestionService(nil, testLogger(t), nil, nil, nil, nil, nil, nil,
		NewChangeDetector(), nil, nil)

	_, err := svc.Ingest(context.Background(), &dto.ScrapeResult{URL: "https://acme.example"})
	require.Error(t, err)

	_, err = svc.Ingest(context.Background(), nil)
	require.Error(t, err)
}

func TestApplyRecord(t *testing.T) {
	size := 42
	company := &entity.Company{ID: 1, WebsiteURL: "https://acme.example", Name: "Oud"}
	rec := &dto.CompanyRecord{
		Title:              "Acme",
		Headquarters:       "Amsterdam",
		TeamSize:           dto.FlexInt{Value: &size},
		Funding:            "€2M",
		Pricing:            "€29/mo",
		KeyFeatures:        []string{"SSO", "API"},
		Competitors:        dto.CompetitorList{"Globex", "Initech"},
		ProductDescription: "CRM",
	}

	applyRecord(company, rec)

	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, "Amsterdam", company.Headquarters)
	require.NotNil(t, company.TeamSize)
	assert.Equal(t, 42, *company.TeamSize)
	require.NotNil(t, company.Funding)
	assert.Equal(t, 2_000_000.0, *company.Funding)
	assert.Equal(t, []string{"SSO", "API"}, []string(company.KeyFeatures))
	assert.JSONEq(t, `["Globex","Initech"]`, string(company.Competitors))
}

func TestApplyRecordNameFallbacks(t *testing.T) {
	company := &entity.Company{WebsiteURL: "https://acme.example"}
	applyRecord(company, &dto.CompanyRecord{})
	assert.Equal(t, "https://acme.example", company.Name)

	company = &entity.Company{WebsiteURL: "https://acme.example", Name: "Bestaand"}
	applyRecord(company, &dto.CompanyRecord{})
	assert.Equal(t, "Bestaand", company.Name)
}

func TestExtractionResultAsRecord(t *testing.T) {
	structured := dto.ExtractionResult{Record: &dto.CompanyRecord{Title: "Acme"}}
	assert.False(t, structured.IsFallback())
	assert.Equal(t, "Acme", structured.AsRecord().Title)

	fallback := dto.ExtractionResult{Fallback: "geen geldige JSON"}
	assert.True(t, fallback.IsFallback())
	assert.Equal(t, "geen geldige JSON", fallback.AsRecord().AISummary)
}
