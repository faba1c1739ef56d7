package entity

import "time"

// AuditLog records one data acquisition event for a company.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   uint      `gorm:"not null;index" json:"company_id"`
	SourceName  string    `json:"source_name"`
	SourceURL   string    `json:"source_url"`
	RetrievedAt time.Time `gorm:"autoCreateTime" json:"retrieved_at"`
}

// TableName specifies the table name for the AuditLog model.
func (AuditLog) TableName() string {
	return "audit_logs"
}
