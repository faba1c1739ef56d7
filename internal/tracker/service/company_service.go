package service

import (
	"context"
	"fmt"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/repository"
	"golang-rival-tracker/pkg/logger"
)

// CompanyService exposes company CRUD plus the similarity ranking.
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*entity.Company, error)
	Get(ctx context.Context, id uint) (*entity.Company, error)
	List(ctx context.Context) ([]entity.Company, error)
	Delete(ctx context.Context, id uint) error
	FindSimilar(ctx context.Context, id uint, topN int, sameSectorOnly bool) ([]dto.SimilarCompanyResponse, error)
}

type companyService struct {
	log         *logger.Logger
	companyRepo repository.CompanyRepository
	sectorRepo  repository.SectorRepository
	similarity  *SimilarityEngine
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(log *logger.Logger, companyRepo repository.CompanyRepository, sectorRepo repository.SectorRepository, similarity *SimilarityEngine) CompanyService {
	return &companyService{
		log:         log,
		companyRepo: companyRepo,
		sectorRepo:  sectorRepo,
		similarity:  similarity,
	}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*entity.Company, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("company name is required")
	}

	sectorID := req.SectorID
	if sectorID == nil && req.SectorName != "" {
		sector, err := s.sectorRepo.FindOrCreateByName(ctx, req.SectorName)
		if err != nil {
			return nil, fmt.Errorf("resolve sector %q: %w", req.SectorName, err)
		}
		sectorID = &sector.ID
	}

	company := &entity.Company{
		Name:         req.Name,
		WebsiteURL:   req.WebsiteURL,
		Headquarters: req.Headquarters,
		TeamSize:     req.TeamSize,
		Funding:      req.Funding,
		SectorID:     sectorID,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.log.Info("company registered",
		logger.Field("company_id", company.ID),
		logger.StringField("name", company.Name))
	return company, nil
}

func (s *companyService) Get(ctx context.Context, id uint) (*entity.Company, error) {
	return s.companyRepo.FindByID(ctx, id)
}

func (s *companyService) List(ctx context.Context) ([]entity.Company, error) {
	return s.companyRepo.FindAll(ctx)
}

func (s *companyService) Delete(ctx context.Context, id uint) error {
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete company %d: %w", id, err)
	}
	s.log.Info("company deleted", logger.Field("company_id", id))
	return nil
}

// FindSimilar ranks all other tracked companies against the target.
func (s *companyService) FindSimilar(ctx context.Context, id uint, topN int, sameSectorOnly bool) ([]dto.SimilarCompanyResponse, error) {
	target, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load company %d: %w", id, err)
	}
	candidates, err := s.companyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	ranked := s.similarity.TopSimilar(target, candidates, topN, sameSectorOnly)
	out := make([]dto.SimilarCompanyResponse, 0, len(ranked))
	for _, sc := range ranked {
		out = append(out, dto.SimilarCompanyResponse{
			CompanyID:  sc.Company.ID,
			Name:       sc.Company.Name,
			WebsiteURL: sc.Company.WebsiteURL,
			Score:      sc.Score,
		})
	}
	return out, nil
}
