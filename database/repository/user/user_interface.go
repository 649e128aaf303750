package userRepo

import "appointify/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, or nil if absent.
	GetByEmail(email string) (*models.User, error)
	// GetByTokenHash retrieves the user holding the given auth token hash.
	GetByTokenHash(hash string) (*models.User, error)
	// ListByRole retrieves all users with the given role.
	ListByRole(role models.Role) ([]models.User, error)
	// CountByRole counts users with the given role.
	CountByRole(role models.Role) (int64, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
