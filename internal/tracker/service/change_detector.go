package service

import (
	"fmt"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/pkg/utils"
)

// ChangeDetector compares a stored company snapshot against a freshly
// extracted record and emits discrete change events. All rules are pure
// functions of old vs new values; missing fields are treated as empty.
type ChangeDetector struct{}

// NewChangeDetector creates a new ChangeDetector.
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// Detect returns the ordered list of change events for one cycle:
// feature additions (in normalized sort order), feature removals (same
// order), then pricing, product description and target segment.
func (d *ChangeDetector) Detect(old *entity.Company, rec *dto.CompanyRecord) []entity.ChangeEvent {
	if old == nil || rec == nil {
		return nil
	}

	var events []entity.ChangeEvent
	add := func(t entity.ChangeEventType, description string) {
		events = append(events, entity.ChangeEvent{
			CompanyID:   old.ID,
			EventType:   t,
			Description: description,
		})
	}

	d.detectFeatureChanges(old.KeyFeatures, rec.KeyFeatures, add)
	d.detectPricingChange(old.Pricing, rec.Pricing, add)

	if !utils.Similar(old.ProductDescription, rec.ProductDescription) {
		add(entity.EventProductChange, "Productomschrijving is gewijzigd")
	}
	if !utils.Similar(old.TargetSegment, rec.TargetSegment) {
		add(entity.EventSegmentChange, "Doelgroep is gewijzigd")
	}

	return events
}

func (d *ChangeDetector) detectFeatureChanges(oldList, newList []string, add func(entity.ChangeEventType, string)) {
	oldNorm := utils.NormalizeList(oldList)
	newNorm := utils.NormalizeList(newList)

	oldSet := toSet(oldNorm)
	newSet := toSet(newNorm)

	for _, feature := range newNorm {
		if _, ok := oldSet[feature]; !ok {
			add(entity.EventNewFeature, fmt.Sprintf("Nieuwe feature: %s", feature))
		}
	}
	for _, feature := range oldNorm {
		if _, ok := newSet[feature]; !ok {
			add(entity.EventRemovedFeature, fmt.Sprintf("Feature verwijderd: %s", feature))
		}
	}
}

func (d *ChangeDetector) detectPricingChange(oldPricing, newPricing string, add func(entity.ChangeEventType, string)) {
	if utils.Similar(oldPricing, newPricing) {
		return
	}

	oldEmpty := utils.Normalize(oldPricing) == ""
	newEmpty := utils.Normalize(newPricing) == ""

	switch {
	case oldEmpty && newEmpty:
		// Nothing on either side; Similar already covers this, but keep
		// the guard so the rule never depends on the ratio's edge cases.
	case !oldEmpty && !newEmpty:
		add(entity.EventPricingChange, fmt.Sprintf("Prijswijziging: %q -> %q", oldPricing, newPricing))
	case oldEmpty:
		add(entity.EventPricingAdded, fmt.Sprintf("Prijsinformatie toegevoegd: %q", newPricing))
	default:
		add(entity.EventPricingRemoved, fmt.Sprintf("Prijsinformatie verwijderd: %q", oldPricing))
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
