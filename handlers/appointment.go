package handlers

import (
	"errors"
	"net/http"
	"time"

	"appointify/middleware"
	"appointify/models"
	"appointify/services/appointment"
	"appointify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves appointment CRUD for all three roles.
type AppointmentHandler struct {
	Appointments appointment.AppointmentService
	Logger       *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Appointments: svc, Logger: logger}
}

// Create books a pending appointment for the authenticated client.
// A lost booking race returns 409; the client should re-query availability
// and retry.
func (h *AppointmentHandler) Create(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}

	appt, err := h.Appointments.Book(caller, req)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrSlotTaken):
			utils.JSONError(c, http.StatusConflict, "Slot no longer available",
				"Another booking claimed this time. Re-query availability and retry.")
		case errors.Is(err, appointment.ErrUnknownService),
			errors.Is(err, appointment.ErrUnknownAgent),
			errors.Is(err, appointment.ErrPastTime):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid booking request", err.Error())
		default:
			h.Logger.Error("Booking failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create appointment", "")
		}
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// List returns appointments visible to the caller, with optional status,
// agent and date filters (admin only for the agent filter).
func (h *AppointmentHandler) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	filter := models.AppointmentFilter{}
	if status := c.Query("status"); status != "" {
		parsed, err := models.ParseAppointmentStatus(status)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status filter", err.Error())
			return
		}
		filter.Status = parsed
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		filter.AgentID = agentID
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date filter", err.Error())
			return
		}
		filter.DateFrom = day
		filter.DateTo = day.AddDate(0, 0, 1)
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date_from filter", err.Error())
			return
		}
		filter.DateFrom = t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date_to filter", err.Error())
			return
		}
		// Inclusive upper bound on the calendar day.
		filter.DateTo = t.AddDate(0, 0, 1)
	}

	appts, err := h.Appointments.List(caller, filter)
	if err != nil {
		h.Logger.Error("Failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Get returns one appointment.
func (h *AppointmentHandler) Get(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	appt, err := h.Appointments.Get(caller, c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Update applies status, notes, or payment-reference changes.
func (h *AppointmentHandler) Update(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid update payload", err.Error())
		return
	}

	appt, err := h.Appointments.Update(caller, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, appointment.ErrBadStatus) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid appointment status", err.Error())
			return
		}
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel transitions an appointment to cancelled.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	if err := h.Appointments.Cancel(caller, c.Param("id")); err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

func (h *AppointmentHandler) writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
	case errors.Is(err, appointment.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Not allowed", "")
	default:
		h.Logger.Error("Appointment lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Appointment operation failed", "")
	}
}
