package handlers

import (
	"errors"
	"net/http"

	"appointify/middleware"
	"appointify/models"
	"appointify/services/agent"
	"appointify/services/availability"
	"appointify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AgentHandler serves the agent console: dashboard, weekly availability,
// and ad-hoc blocked time.
type AgentHandler struct {
	Agents       agent.AgentService
	Availability availability.AvailabilityService
	Logger       *zap.Logger
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(agents agent.AgentService, avail availability.AvailabilityService, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{Agents: agents, Availability: avail, Logger: logger}
}

// Dashboard returns upcoming and today's appointments plus monthly figures
// for the authenticated agent.
func (h *AgentHandler) Dashboard(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	dash, err := h.Agents.Dashboard(caller.ID)
	if err != nil {
		h.Logger.Error("Failed to build agent dashboard", zap.Error(err), zap.String("agentID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard", "")
		return
	}
	c.JSON(http.StatusOK, dash)
}

// GetAvailability returns the agent's weekly availability rules.
func (h *AgentHandler) GetAvailability(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	rules, err := h.Availability.ListRules(caller.ID)
	if err != nil {
		h.Logger.Error("Failed to list availability rules", zap.Error(err), zap.String("agentID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load availability", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": rules})
}

// SaveAvailability replaces the agent's weekly availability wholesale.
func (h *AgentHandler) SaveAvailability(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid availability payload", err.Error())
		return
	}

	rules, err := h.Availability.SaveWeek(caller.ID, req)
	if err != nil {
		if errors.Is(err, availability.ErrBadRule) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid availability rules", err.Error())
			return
		}
		h.Logger.Error("Failed to save availability", zap.Error(err), zap.String("agentID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save availability", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": rules})
}

// BlockTime records an ad-hoc blocked interval on the agent's calendar.
func (h *AgentHandler) BlockTime(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.BlockTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid block-time payload", err.Error())
		return
	}

	blocked, err := h.Availability.BlockTime(caller.ID, req)
	if err != nil {
		if errors.Is(err, availability.ErrBadInterval) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid blocked interval", err.Error())
			return
		}
		h.Logger.Error("Failed to block time", zap.Error(err), zap.String("agentID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to block time", "")
		return
	}
	c.JSON(http.StatusCreated, blocked)
}
