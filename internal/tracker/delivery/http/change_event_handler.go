package http

import (
	"net/http"
	"strconv"
	"time"

	"golang-rival-tracker/internal/tracker/dto"
	"golang-rival-tracker/internal/tracker/service"
	"golang-rival-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChangeEventHandler handles HTTP requests for the change-event feed.
type ChangeEventHandler struct {
	changeEventService service.ChangeEventService
	logger             *logger.Logger
}

// NewChangeEventHandler creates a new ChangeEventHandler.
func NewChangeEventHandler(changeEventService service.ChangeEventService, logger *logger.Logger) *ChangeEventHandler {
	return &ChangeEventHandler{changeEventService: changeEventService, logger: logger}
}

// RegisterRoutes registers the event routes to the Echo group.
func (h *ChangeEventHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetEvents)
}

func (h *ChangeEventHandler) GetEvents(c echo.Context) error {
	var filter dto.ChangeEventFilter

	if v := c.QueryParam("company_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid company_id"})
		}
		companyID := uint(id)
		filter.CompanyID = &companyID
	}
	filter.EventType = c.QueryParam("event_type")
	if v := c.QueryParam("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid since timestamp, expected RFC3339"})
		}
		filter.Since = &since
	}

	events, err := h.changeEventService.Feed(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to load change events", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load change events"})
	}
	return c.JSON(http.StatusOK, events)
}
