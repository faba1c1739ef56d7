package entity

import (
	"database/sql"
	"time"
)

// TrackSchedule drives the periodic refresh of one company. The scheduler
// polls for due schedules and publishes tasks to the tracker stream.
type TrackSchedule struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	CompanyID      uint         `gorm:"not null;index" json:"company_id"`
	TaskType       string       `gorm:"not null;default:company_refresh" json:"task_type"`
	CronExpression string       `gorm:"not null" json:"cron_expression"`
	IsActive       bool         `gorm:"default:true" json:"is_active"`
	LastExecution  sql.NullTime `json:"last_execution"`
	NextExecution  sql.NullTime `json:"next_execution"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the TrackSchedule model.
func (TrackSchedule) TableName() string {
	return "track_schedules"
}

// TrackTask is the payload published to the tracker stream.
type TrackTask struct {
	ScheduleID uint   `json:"schedule_id,omitempty"`
	CompanyID  uint   `json:"company_id"`
	TaskType   string `json:"task_type"`
}
