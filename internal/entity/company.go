package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Company is a tracked competitor. WebsiteURL is the natural key used to
// match incoming scrape results to existing rows; uniqueness over
// non-empty URLs is enforced by a partial index in the migrations.
// Matching is exact string equality, no case or scheme normalization.
type Company struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	WebsiteURL string `json:"website_url"`

	Headquarters    string   `json:"headquarters"`
	OfficeLocations string   `json:"office_locations"`
	TeamSize        *int     `json:"team_size,omitempty"`
	Funding         *float64 `gorm:"type:numeric" json:"funding,omitempty"`
	TractionSignals string   `json:"traction_signals"`
	FundingHistory  string   `json:"funding_history"`

	AISummary          string         `gorm:"column:ai_summary" json:"ai_summary"`
	ValueProposition   string         `json:"value_proposition"`
	ProductDescription string         `json:"product_description"`
	TargetSegment      string         `json:"target_segment"`
	Pricing            string         `json:"pricing"`
	KeyFeatures        pq.StringArray `gorm:"type:text[]" json:"key_features"`
	Competitors        datatypes.JSON `gorm:"type:jsonb" json:"competitors"`

	SectorID *uint   `json:"sector_id,omitempty"`
	Sector   *Sector `json:"sector,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}

// Sector is a lookup-table reference used to scope similarity rankings.
type Sector struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

func (Sector) TableName() string {
	return "sectors"
}
