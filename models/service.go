package models

import "time"

// Service is a bookable offering. DurationMinutes drives slot length and
// the computed end of every appointment booked against it.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	IsActive        bool      `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// Duration returns the service length as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// SaveServiceRequest is the payload for creating or updating a service.
type SaveServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Description     string  `json:"description" binding:"required"`
	Price           float64 `json:"price" binding:"required,min=0,max=999999.99"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,min=15,max=480"`
	IsActive        *bool   `json:"isActive,omitempty"`
}
