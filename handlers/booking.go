package handlers

import (
	"errors"
	"net/http"

	"appointify/services/availability"
	"appointify/services/catalog"
	"appointify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the public booking surface: the catalog index and
// the availability slot query.
type BookingHandler struct {
	Availability availability.AvailabilityService
	Catalog      catalog.CatalogService
	Logger       *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(av availability.AvailabilityService, cat catalog.CatalogService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Availability: av, Catalog: cat, Logger: logger}
}

// GetCatalog returns active services and active agents for the booking page.
func (h *BookingHandler) GetCatalog(c *gin.Context) {
	index, err := h.Catalog.Index()
	if err != nil {
		h.Logger.Error("Failed to load booking catalog", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load catalog", "")
		return
	}
	c.JSON(http.StatusOK, index)
}

// GetAvailability returns the bookable slots for a service, agent and date.
// Validation failures surface before the generator runs; an empty slot list
// is a normal 200 response.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	serviceID := c.Query("service_id")
	agentID := c.Query("agent_id")
	date := c.Query("date")
	if serviceID == "" || agentID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing query parameters",
			"service_id, agent_id and date are required")
		return
	}

	resp, err := h.Availability.GetAvailability(serviceID, agentID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBadDate),
			errors.Is(err, availability.ErrPastDate),
			errors.Is(err, availability.ErrUnknownService),
			errors.Is(err, availability.ErrUnknownAgent):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid availability query", err.Error())
		default:
			h.Logger.Error("Availability query failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", "")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
