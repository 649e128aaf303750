package user

import "appointify/models"

// UserService handles accounts across all three roles.
type UserService interface {
	// Register creates an account and returns it with a bearer token.
	Register(req models.RegisterUserRequest) (*models.AuthResponse, error)
	// Authenticate verifies credentials and issues a bearer token.
	Authenticate(req models.AuthRequest) (*models.AuthResponse, error)
	// GetByID retrieves an account.
	GetByID(id string) (*models.User, error)
	// Update applies profile changes.
	Update(id string, req models.UpdateUserRequest) (*models.User, error)
	// Delete removes an account.
	Delete(id string) error
	// RevokeToken invalidates the account's current bearer token.
	RevokeToken(id string) error
	// ListAgents returns all agent accounts.
	ListAgents() ([]models.User, error)
	// ListActiveAgents returns active agent accounts only.
	ListActiveAgents() ([]models.User, error)
	// CountByRole counts accounts per role for dashboards.
	CountByRole(role models.Role) (int64, error)
}
