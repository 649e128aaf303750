package models

import (
	"fmt"
	"time"
)

// AppointmentStatus is the closed set of appointment lifecycle states.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus converts a submitted status string into a status.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// OccupiesTime reports whether an appointment in this status blocks the
// agent's calendar. Only pending and confirmed appointments do.
func (s AppointmentStatus) OccupiesTime() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment is a booked time range between a client and an agent for one
// service. EndsAt is always ScheduledAt plus the service duration.
type Appointment struct {
	ID               string            `bson:"id" json:"id"`
	ClientID         string            `bson:"client_id" json:"clientId"`
	AgentID          string            `bson:"agent_id" json:"agentId"`
	ServiceID        string            `bson:"service_id" json:"serviceId"`
	ScheduledAt      time.Time         `bson:"scheduled_at" json:"scheduledAt"`
	EndsAt           time.Time         `bson:"ends_at" json:"endsAt"`
	Status           AppointmentStatus `bson:"status" json:"status"`
	Amount           float64           `bson:"amount" json:"amount"`
	PaymentReference string            `bson:"payment_reference,omitempty" json:"paymentReference,omitempty"`
	Notes            string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updated_at" json:"updatedAt"`
}

// Overlaps reports whether the appointment's half-open [ScheduledAt, EndsAt)
// range intersects [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.ScheduledAt.Before(end) && a.EndsAt.After(start)
}

// CreateAppointmentRequest is the payload for booking an appointment.
type CreateAppointmentRequest struct {
	AgentID     string    `json:"agentId" binding:"required"`
	ServiceID   string    `json:"serviceId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

// UpdateAppointmentRequest is the payload for appointment updates. Status is
// the only field relevant to slot computation; notes and the payment
// reference are bookkeeping.
type UpdateAppointmentRequest struct {
	Status           *string `json:"status,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	PaymentReference *string `json:"paymentReference,omitempty"`
}

// AppointmentFilter narrows admin and agent appointment listings.
type AppointmentFilter struct {
	Status   AppointmentStatus
	AgentID  string
	ClientID string
	DateFrom time.Time
	DateTo   time.Time
}
