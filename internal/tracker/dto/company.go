package dto

import "time"

// CreateCompanyRequest is the payload for manually registering a company.
type CreateCompanyRequest struct {
	Name         string   `json:"name"`
	WebsiteURL   string   `json:"website_url"`
	Headquarters string   `json:"headquarters"`
	TeamSize     *int     `json:"team_size,omitempty"`
	Funding      *float64 `json:"funding,omitempty"`
	SectorID     *uint    `json:"sector_id,omitempty"`
	SectorName   string   `json:"sector_name,omitempty"`
}

// SimilarCompanyResponse is one entry of a similarity ranking.
type SimilarCompanyResponse struct {
	CompanyID  uint    `json:"company_id"`
	Name       string  `json:"name"`
	WebsiteURL string  `json:"website_url"`
	Score      float64 `json:"score"`
}

// ChangeEventResponse is one entry of the change-event feed.
type ChangeEventResponse struct {
	ID          uint      `json:"id"`
	CompanyID   uint      `json:"company_id"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	DetectedAt  time.Time `json:"detected_at"`
}

// ChangeEventFilter narrows the change-event feed.
type ChangeEventFilter struct {
	CompanyID *uint
	EventType string
	Since     *time.Time
}
