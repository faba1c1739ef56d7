package http

import (
	"errors"
	"net/http"

	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/service"
	"golang-rival-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ExportHandler handles profile and audit-trail exports.
type ExportHandler struct {
	exportService service.ExportService
	logger        *logger.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{exportService: exportService, logger: logger}
}

// RegisterRoutes registers the export routes to the company group.
func (h *ExportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:id/export", h.ExportProfile)
	g.GET("/:id/audit", h.ExportAuditLog)
}

func (h *ExportHandler) ExportProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company ID"})
	}

	data, contentType, err := h.exportService.ExportProfile(c.Request().Context(), id, c.QueryParam("format"))
	if err != nil {
		return h.exportError(c, err)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *ExportHandler) ExportAuditLog(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company ID"})
	}

	data, contentType, err := h.exportService.ExportAuditLog(c.Request().Context(), id, c.QueryParam("format"))
	if err != nil {
		return h.exportError(c, err)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *ExportHandler) exportError(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Company not found"})
	}
	if errors.Is(err, service.ErrUnsupportedFormat) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	h.logger.Error("Export failed", logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
}
