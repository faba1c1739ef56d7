package service

import (
	"testing"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeDetectorNilInputs(t *testing.T) {
	d := NewChangeDetector()
	assert.Nil(t, d.Detect(nil, &dto.CompanyRecord{}))
	assert.Nil(t, d.Detect(&entity.Company{}, nil))
}

func TestChangeDetectorNoChanges(t *testing.T) {
	d := NewChangeDetector()
	old := &entity.Company{
		ID:                 1,
		Pricing:            "€29/mo",
		ProductDescription: "CRM voor MKB",
		TargetSegment:      "MKB",
		KeyFeatures:        []string{"SSO", "API"},
	}
	rec := &dto.CompanyRecord{
		Pricing:            "€29/mo",
		ProductDescription: "CRM  voor  MKB",
		TargetSegment:      "mkb",
		KeyFeatures:        []string{"api", "SSO"},
	}
	assert.Empty(t, d.Detect(old, rec))
}

func TestChangeDetectorFeatureAddAndRemove(t *testing.T) {
	d := NewChangeDetector()
	old := &entity.Company{ID: 1, KeyFeatures: []string{"SSO", "API"}}
	rec := &dto.CompanyRecord{KeyFeatures: []string{"API", "Webhooks"}}

	events := d.Detect(old, rec)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventNewFeature, events[0].EventType)
	assert.Contains(t, events[0].Description, "webhooks")
	assert.Equal(t, entity.EventRemovedFeature, events[1].EventType)
	assert.Contains(t, events[1].Description, "sso")
}

func TestChangeDetectorFeatureEventsSorted(t *testing.T) {
	d := NewChangeDetector()
	old := &entity.Company{ID: 1}
	rec := &dto.CompanyRecord{KeyFeatures: []string{"Zapier", "Audit log", "MFA"}}

	events := d.Detect(old, rec)
	require.Len(t, events, 3)
	assert.Contains(t, events[0].Description, "audit log")
	assert.Contains(t, events[1].Description, "mfa")
	assert.Contains(t, events[2].Description, "zapier")
}

func TestChangeDetectorPricing(t *testing.T) {
	d := NewChangeDetector()

	t.Run("added", func(t *testing.T) {
		events := d.Detect(&entity.Company{ID: 1}, &dto.CompanyRecord{Pricing: "€29/mo"})
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventPricingAdded, events[0].EventType)
	})

	t.Run("removed", func(t *testing.T) {
		events := d.Detect(&entity.Company{ID: 1, Pricing: "€29/mo"}, &dto.CompanyRecord{})
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventPricingRemoved, events[0].EventType)
	})

	t.Run("changed", func(t *testing.T) {
		events := d.Detect(&entity.Company{ID: 1, Pricing: "€29/mo"}, &dto.CompanyRecord{Pricing: "vanaf €99 per gebruiker"})
		require.Len(t, events, 1)
		assert.Equal(t, entity.EventPricingChange, events[0].EventType)
		assert.Contains(t, events[0].Description, "€29/mo")
		assert.Contains(t, events[0].Description, "€99")
	})
}

func TestChangeDetectorEventOrder(t *testing.T) {
	d := NewChangeDetector()
	old := &entity.Company{
		ID:                 1,
		KeyFeatures:        []string{"SSO"},
		Pricing:            "€29/mo",
		ProductDescription: "CRM voor MKB",
		TargetSegment:      "MKB",
	}
	rec := &dto.CompanyRecord{
		KeyFeatures:        []string{"Webhooks"},
		Pricing:            "vanaf €99 per gebruiker",
		ProductDescription: "Volledig platform voor verkoopteams",
		TargetSegment:      "Enterprise verkooporganisaties",
	}

	events := d.Detect(old, rec)
	require.Len(t, events, 5)
	assert.Equal(t, entity.EventNewFeature, events[0].EventType)
	assert.Equal(t, entity.EventRemovedFeature, events[1].EventType)
	assert.Equal(t, entity.EventPricingChange, events[2].EventType)
	assert.Equal(t, entity.EventProductChange, events[3].EventType)
	assert.Equal(t, entity.EventSegmentChange, events[4].EventType)
}
