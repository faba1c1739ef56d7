package entity

import "time"

// Canonical metric names. Exactly these five are derived per company.
const (
	MetricPricing  = "Pricing"
	MetricFeatures = "Features"
	MetricReviews  = "Reviews"
	MetricFunding  = "Funding"
	MetricHiring   = "Hiring"
)

// Metric history source tags.
const (
	// MetricSourceSnapshot marks a datapoint captured by a live tracking cycle.
	MetricSourceSnapshot = "snapshot"
	// MetricSourceInferred marks a datapoint backfilled from AI-reconstructed history.
	MetricSourceInferred = "inferred"
)

// Metric is the current-value cache, one row per (company, name) pair.
// Upserted on every tracking cycle.
type Metric struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CompanyID         uint      `gorm:"not null;uniqueIndex:idx_metrics_company_name" json:"company_id"`
	Name              string    `gorm:"not null;uniqueIndex:idx_metrics_company_name" json:"name"`
	Value             *float64  `gorm:"type:numeric" json:"value,omitempty"`
	Description       string    `json:"description"`
	Active            bool      `gorm:"default:true" json:"active"`
	TrackingFrequency string    `json:"tracking_frequency"`
	LastUpdated       time.Time `json:"last_updated"`
}

// TableName specifies the table name for the Metric model.
func (Metric) TableName() string {
	return "metrics"
}

// MetricHistory is the append-only time series behind each metric. Rows
// are never mutated or deleted; a nil value encodes a textual-only fact.
type MetricHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CompanyID  uint      `gorm:"not null;index" json:"company_id"`
	MetricName string    `gorm:"not null" json:"metric_name"`
	Value      *float64  `gorm:"type:numeric" json:"value,omitempty"`
	Source     string    `gorm:"not null;default:snapshot" json:"source"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
}

// TableName specifies the table name for the MetricHistory model.
func (MetricHistory) TableName() string {
	return "metric_history"
}
