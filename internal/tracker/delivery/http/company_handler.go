package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/service"
	"golang-rival-tracker/pkg/common"
	"golang-rival-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompanyHandler handles HTTP requests for tracked companies.
type CompanyHandler struct {
	companyService service.CompanyService
	taskQueue      service.TaskQueueService
	logger         *logger.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService, taskQueue service.TaskQueueService, logger *logger.Logger) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, taskQueue: taskQueue, logger: logger}
}

// RegisterRoutes registers the company routes to the Echo group.
func (h *CompanyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateCompany)
	g.GET("", h.GetAllCompanies)
	g.GET("/:id", h.GetCompanyByID)
	g.DELETE("/:id", h.DeleteCompany)
	g.POST("/:id/refresh", h.RefreshCompany)
	g.GET("/:id/similar", h.GetSimilarCompanies)
}

func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	var req dto.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	company, err := h.companyService.Create(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) GetAllCompanies(c echo.Context) error {
	companies, err := h.companyService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list companies", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list companies"})
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompanyByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company ID"})
	}

	company, err := h.companyService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Company not found"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) DeleteCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company ID"})
	}

	if err := h.companyService.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// RefreshCompany enqueues a refresh task; the tracker worker picks it up.
func (h *CompanyHandler) RefreshCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company ID"})
	}

	if _, err := h.companyService.Get(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Company not found"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	task := entity.TrackTask{CompanyID: id, TaskType: common.TaskTypeCompanyRefresh}
	if err := h.taskQueue.Enqueue(c.Request().Context(), task); err != nil {
		h.logger.Error("Failed to enqueue refresh", logger.Field("company_id", id), logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to enqueue refresh"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"status": "queued"})
}

func (h *CompanyHandler) GetSimilarCompanies(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company ID"})
	}

	topN := 5
	if v := c.QueryParam("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid top_n"})
		}
		topN = n
	}
	sameSector := c.QueryParam("same_sector") == "true"

	similar, err := h.companyService.FindSimilar(c.Request().Context(), id, topN, sameSector)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Company not found"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, similar)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
