package repository

import (
	"context"

	"golang-rival-tracker/internal/entity"

	"gorm.io/gorm"
)

// AuditLogRepository defines the interface for data-acquisition audit logs.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindByCompany(ctx context.Context, companyID uint) ([]entity.AuditLog, error)
	WithTx(tx *gorm.DB) AuditLogRepository
}

// NewAuditLogRepository creates a new GORM-based audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

type auditLogRepository struct {
	db *gorm.DB
}

func (r *auditLogRepository) WithTx(tx *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: tx}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepository) FindByCompany(ctx context.Context, companyID uint) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("retrieved_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
