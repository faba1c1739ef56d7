package dto

import "golang-rival-tracker/internal/entity"

// IngestOutcome is the result of one successful ingestion cycle.
type IngestOutcome struct {
	Company *entity.Company
	Events  []entity.ChangeEvent
	Created bool
}

// RefreshSummary reports the result of a batch refresh.
type RefreshSummary struct {
	Total     int
	Succeeded int
	Failed    int
}
