package repository

import (
	"context"

	"golang-rival-tracker/internal/entity"

	"gorm.io/gorm"
)

// SectorRepository defines the interface for the sector lookup table.
type SectorRepository interface {
	FindAll(ctx context.Context) ([]entity.Sector, error)
	FindOrCreateByName(ctx context.Context, name string) (*entity.Sector, error)
}

// NewSectorRepository creates a new GORM-based sector repository.
func NewSectorRepository(db *gorm.DB) SectorRepository {
	return &sectorRepository{db: db}
}

type sectorRepository struct {
	db *gorm.DB
}

func (r *sectorRepository) FindAll(ctx context.Context) ([]entity.Sector, error) {
	var sectors []entity.Sector
	if err := r.db.WithContext(ctx).Order("name").Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

func (r *sectorRepository) FindOrCreateByName(ctx context.Context, name string) (*entity.Sector, error) {
	var sector entity.Sector
	err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&sector, entity.Sector{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &sector, nil
}
