package service

import (
	"testing"

	"golang-rival-tracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityIdenticalProfiles(t *testing.T) {
	e := NewSimilarityEngine()
	a := &entity.Company{
		ID:                 1,
		TargetSegment:      "MKB in de Benelux",
		KeyFeatures:        []string{"SSO", "API"},
		ProductDescription: "CRM voor verkoopteams",
		Pricing:            "€29 per maand",
	}
	b := &entity.Company{
		ID:                 2,
		TargetSegment:      a.TargetSegment,
		KeyFeatures:        a.KeyFeatures,
		ProductDescription: a.ProductDescription,
		Pricing:            a.Pricing,
	}
	assert.Equal(t, 100.0, e.Similarity(a, b))
}

func TestSimilarityNoQualifyingDimension(t *testing.T) {
	e := NewSimilarityEngine()
	a := &entity.Company{ID: 1, TargetSegment: "MKB", Pricing: "€29"}
	b := &entity.Company{ID: 2, KeyFeatures: []string{"API"}, ProductDescription: "CRM"}
	assert.Equal(t, 0.0, e.Similarity(a, b))
}

func TestSimilarityExcludesEmptyDimensions(t *testing.T) {
	e := NewSimilarityEngine()
	// Only target_segment is present on both sides; the score is
	// normalized over that single dimension, not dragged down by the
	// empty ones.
	a := &entity.Company{ID: 1, TargetSegment: "MKB in de Benelux"}
	b := &entity.Company{ID: 2, TargetSegment: "MKB in de Benelux", Pricing: "€99"}
	assert.Equal(t, 100.0, e.Similarity(a, b))
}

func TestSimilarityPartialOverlap(t *testing.T) {
	e := NewSimilarityEngine()
	a := &entity.Company{ID: 1, KeyFeatures: []string{"SSO", "API"}}
	b := &entity.Company{ID: 2, KeyFeatures: []string{"API", "Webhooks"}}
	// Jaccard 1/3 over the single qualifying dimension.
	assert.InDelta(t, 33.33, e.Similarity(a, b), 0.01)
}

func TestTopSimilarExcludesTarget(t *testing.T) {
	e := NewSimilarityEngine()
	target := entity.Company{ID: 1, TargetSegment: "MKB"}
	candidates := []entity.Company{
		target,
		{ID: 2, TargetSegment: "MKB"},
		{ID: 3, TargetSegment: "Enterprise"},
	}

	ranked := e.TopSimilar(&target, candidates, 10, false)
	require.Len(t, ranked, 2)
	for _, sc := range ranked {
		assert.NotEqual(t, target.ID, sc.Company.ID)
	}
	assert.Equal(t, uint(2), ranked[0].Company.ID)
}

func TestTopSimilarSameSectorOnly(t *testing.T) {
	e := NewSimilarityEngine()
	sectorA, sectorB := uint(1), uint(2)
	target := entity.Company{ID: 1, TargetSegment: "MKB", SectorID: &sectorA}
	candidates := []entity.Company{
		{ID: 2, TargetSegment: "MKB", SectorID: &sectorA},
		{ID: 3, TargetSegment: "MKB", SectorID: &sectorB},
		{ID: 4, TargetSegment: "MKB"},
	}

	ranked := e.TopSimilar(&target, candidates, 10, true)
	require.Len(t, ranked, 1)
	assert.Equal(t, uint(2), ranked[0].Company.ID)
}

func TestTopSimilarNoSectorNoRestriction(t *testing.T) {
	e := NewSimilarityEngine()
	sectorB := uint(2)
	target := entity.Company{ID: 1, TargetSegment: "MKB"}
	candidates := []entity.Company{
		{ID: 2, TargetSegment: "MKB", SectorID: &sectorB},
		{ID: 3, TargetSegment: "MKB"},
	}

	ranked := e.TopSimilar(&target, candidates, 10, true)
	assert.Len(t, ranked, 2)
}

func TestTopSimilarTruncatesAndStaysStable(t *testing.T) {
	e := NewSimilarityEngine()
	target := entity.Company{ID: 1, TargetSegment: "MKB"}
	candidates := []entity.Company{
		{ID: 2, TargetSegment: "MKB"},
		{ID: 3, TargetSegment: "MKB"},
		{ID: 4, TargetSegment: "MKB"},
	}

	ranked := e.TopSimilar(&target, candidates, 2, false)
	require.Len(t, ranked, 2)
	// Equal scores keep input order.
	assert.Equal(t, uint(2), ranked[0].Company.ID)
	assert.Equal(t, uint(3), ranked[1].Company.ID)
}
