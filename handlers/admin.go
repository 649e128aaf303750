package handlers

import (
	"errors"
	"net/http"

	"appointify/models"
	"appointify/services/admin"
	"appointify/services/catalog"
	"appointify/services/user"
	"appointify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the admin console: platform dashboard, the service
// catalog, and the agent roster.
type AdminHandler struct {
	Admin   admin.AdminService
	Catalog catalog.CatalogService
	Users   user.UserService
	Logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adm admin.AdminService, cat catalog.CatalogService, users user.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Admin: adm, Catalog: cat, Users: users, Logger: logger}
}

// Dashboard returns platform-wide totals and the latest appointments.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.Admin.Dashboard()
	if err != nil {
		h.Logger.Error("Failed to build admin dashboard", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load dashboard", "")
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ListServices returns every service offering, active or not.
func (h *AdminHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.ListAll()
	if err != nil {
		h.Logger.Error("Failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list services", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CreateService adds a service offering.
func (h *AdminHandler) CreateService(c *gin.Context) {
	var req models.SaveServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service payload", err.Error())
		return
	}

	svc, err := h.Catalog.Create(req)
	if err != nil {
		h.Logger.Error("Failed to create service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create service", "")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateService rewrites a service offering.
func (h *AdminHandler) UpdateService(c *gin.Context) {
	var req models.SaveServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service payload", err.Error())
		return
	}

	svc, err := h.Catalog.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Service not found", "")
			return
		}
		h.Logger.Error("Failed to update service", zap.Error(err), zap.String("serviceID", c.Param("id")))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update service", "")
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService removes a service offering.
func (h *AdminHandler) DeleteService(c *gin.Context) {
	if err := h.Catalog.Delete(c.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Service not found", "")
			return
		}
		h.Logger.Error("Failed to delete service", zap.Error(err), zap.String("serviceID", c.Param("id")))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete service", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// ListAgents returns every agent account, active or not.
func (h *AdminHandler) ListAgents(c *gin.Context) {
	agents, err := h.Users.ListAgents()
	if err != nil {
		h.Logger.Error("Failed to list agents", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list agents", "")
		return
	}

	public := make([]models.PublicUser, 0, len(agents))
	for i := range agents {
		public = append(public, agents[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{"agents": public})
}
