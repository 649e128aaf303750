package handlers

import (
	"errors"
	"net/http"

	"appointify/middleware"
	"appointify/models"
	"appointify/services/user"
	"appointify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves account registration, login, and profile management.
type UserHandler struct {
	Users  user.UserService
	Logger *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// Register creates an account and returns it with a bearer token.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	resp, err := h.Users.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
		case errors.Is(err, user.ErrBadRole):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Invalid role", "")
		default:
			h.Logger.Error("Registration failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Registration failed", "")
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and issues a fresh bearer token.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	resp, err := h.Users.Authenticate(req)
	if err != nil {
		if errors.Is(err, user.ErrBadCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		h.Logger.Error("Login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user's public profile.
func (h *UserHandler) Profile(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, caller.Public())
}

// UpdateProfile applies profile changes to the authenticated user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	u, err := h.Users.Update(caller.ID, req)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.Logger.Error("Profile update failed", zap.Error(err), zap.String("userID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", "")
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// Logout revokes the authenticated user's current bearer token.
func (h *UserHandler) Logout(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	if err := h.Users.RevokeToken(caller.ID); err != nil {
		h.Logger.Error("Token revocation failed", zap.Error(err), zap.String("userID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to log out", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// DeleteAccount removes the authenticated user's account.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	if err := h.Users.Delete(caller.ID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		h.Logger.Error("Account deletion failed", zap.Error(err), zap.String("userID", caller.ID))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete account", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
