package serviceRepo

import "appointify/models"

// ServiceRepository defines methods for service catalog data access.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// ListActive retrieves active services ordered by name.
	ListActive() ([]models.Service, error)
	// ListAll retrieves every service ordered by name.
	ListAll() ([]models.Service, error)
	// Create inserts a new service record.
	Create(svc *models.Service) error
	// Update modifies an existing service record.
	Update(svc *models.Service) error
	// Delete removes a service record by its ID.
	Delete(id string) error
}
