// Package catalog manages the bookable service offerings and the public
// booking index (active services plus active agents).
package catalog

import (
	"errors"
	"time"

	serviceRepo "appointify/database/repository/service"
	"appointify/models"
	"appointify/services/user"

	"github.com/google/uuid"
)

// ErrNotFound means no service matches the id.
var ErrNotFound = errors.New("service not found")

// BookingIndex is the public landing payload: what can be booked with whom.
type BookingIndex struct {
	Services []models.Service    `json:"services"`
	Agents   []models.PublicUser `json:"agents"`
}

// CatalogService manages service offerings.
type CatalogService interface {
	// Index returns active services and active agents for the booking page.
	Index() (*BookingIndex, error)
	// Get retrieves one service.
	Get(id string) (*models.Service, error)
	// ListAll retrieves every service, active or not.
	ListAll() ([]models.Service, error)
	// Create adds a service offering.
	Create(req models.SaveServiceRequest) (*models.Service, error)
	// Update rewrites a service offering.
	Update(id string, req models.SaveServiceRequest) (*models.Service, error)
	// Delete removes a service offering.
	Delete(id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo  serviceRepo.ServiceRepository
	Users user.UserService
}

// Index returns active services and active agents for the booking page.
func (s *DefaultCatalogService) Index() (*BookingIndex, error) {
	services, err := s.Repo.ListActive()
	if err != nil {
		return nil, err
	}
	agents, err := s.Users.ListActiveAgents()
	if err != nil {
		return nil, err
	}

	public := make([]models.PublicUser, 0, len(agents))
	for i := range agents {
		public = append(public, agents[i].Public())
	}
	return &BookingIndex{Services: services, Agents: public}, nil
}

// Get retrieves one service.
func (s *DefaultCatalogService) Get(id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

// ListAll retrieves every service, active or not.
func (s *DefaultCatalogService) ListAll() ([]models.Service, error) {
	return s.Repo.ListAll()
}

// Create adds a service offering. Request bounds (duration 15..480, price
// 0..999999.99) are enforced by binding validation at the handler.
func (s *DefaultCatalogService) Create(req models.SaveServiceRequest) (*models.Service, error) {
	now := time.Now()
	svc := &models.Service{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive == nil || *req.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Update rewrites a service offering.
func (s *DefaultCatalogService) Update(id string, req models.SaveServiceRequest) (*models.Service, error) {
	svc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.DurationMinutes = req.DurationMinutes
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	svc.UpdatedAt = time.Now()

	if err := s.Repo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a service offering.
func (s *DefaultCatalogService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
