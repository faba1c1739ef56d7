package entity

import "time"

// ChangeEventType is the fixed taxonomy of detectable changes.
type ChangeEventType string

const (
	EventNewFeature     ChangeEventType = "new_feature"
	EventRemovedFeature ChangeEventType = "removed_feature"
	EventPricingChange  ChangeEventType = "pricing_change"
	EventPricingAdded   ChangeEventType = "pricing_added"
	EventPricingRemoved ChangeEventType = "pricing_removed"
	EventProductChange  ChangeEventType = "product_change"
	EventSegmentChange  ChangeEventType = "segment_change"
)

// ChangeEvent is an immutable record of a detected difference between two
// successive snapshots of a company. Append-only audit trail.
type ChangeEvent struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CompanyID   uint            `gorm:"not null;index" json:"company_id"`
	EventType   ChangeEventType `gorm:"not null" json:"event_type"`
	Description string          `json:"description"`
	DetectedAt  time.Time       `gorm:"autoCreateTime" json:"detected_at"`
}

// TableName specifies the table name for the ChangeEvent model.
func (ChangeEvent) TableName() string {
	return "change_events"
}
