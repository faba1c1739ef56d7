package repository

import (
	"context"

	"golang-rival-tracker/internal/entity"

	"gorm.io/gorm"
)

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindByID(ctx context.Context, id uint) (*entity.Company, error)
	FindAll(ctx context.Context) ([]entity.Company, error)
	FindByURL(ctx context.Context, url string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) CompanyRepository
}

// NewCompanyRepository creates a new GORM-based company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

type companyRepository struct {
	db *gorm.DB
}

// WithTx returns a repository bound to the given transaction.
func (r *companyRepository) WithTx(tx *gorm.DB) CompanyRepository {
	return &companyRepository{db: tx}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).Preload("Sector").First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	if err := r.db.WithContext(ctx).Preload("Sector").Order("id").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindByURL matches a company by exact website URL equality, the natural
// key for tying scrape results to stored companies. No case or scheme
// normalization is applied.
func (r *companyRepository) FindByURL(ctx context.Context, url string) (*entity.Company, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).Where("website_url = ?", url).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes a company and all dependent rows. The schema cascades,
// but the explicit deletes keep behavior identical on stores without
// foreign-key enforcement.
func (r *companyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&entity.ChangeEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.Metric{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.MetricHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.AuditLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.TrackSchedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Company{}, id).Error
	})
}
