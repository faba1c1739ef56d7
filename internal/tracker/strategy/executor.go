package strategy

import (
	"context"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
)

// TrackingStrategy defines the interface for the different task types
// consumed from the tracker stream.
type TrackingStrategy interface {
	Execute(ctx context.Context, task *entity.TrackTask) error
	GetType() string
}

// Refresher runs a full tracking cycle for one company.
type Refresher interface {
	Refresh(ctx context.Context, companyID uint) (*dto.IngestOutcome, error)
}

// HistoryBackfiller inserts AI-reconstructed metric datapoints.
type HistoryBackfiller interface {
	Backfill(ctx context.Context, companyID uint, points []dto.MetricSnapshot) error
}
