package appointmentRepo

import (
	"context"
	"time"

	"appointify/models"
)

// DashboardStats are the admin dashboard aggregates.
type DashboardStats struct {
	TotalAppointments int64   `json:"totalAppointments"`
	TotalRevenue      float64 `json:"totalRevenue"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
}

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// CreateIfFree inserts the appointment only when no other pending or
	// confirmed appointment for the same agent overlaps its time range.
	// Returns ErrSlotTaken when the range is already occupied.
	CreateIfFree(ctx context.Context, appt *models.Appointment) error
	// Update modifies an existing appointment record.
	Update(appt *models.Appointment) error
	// Delete removes an appointment record by its ID.
	Delete(id string) error
	// List retrieves appointments matching the filter, newest first.
	List(filter models.AppointmentFilter) ([]models.Appointment, error)
	// ListOccupyingInRange retrieves the agent's pending and confirmed
	// appointments overlapping [from, to), in ascending start order.
	ListOccupyingInRange(agentID string, from, to time.Time) ([]models.Appointment, error)
	// ListUpcoming retrieves the agent's appointments starting after the
	// given instant, soonest first, capped at limit.
	ListUpcoming(agentID string, after time.Time, limit int64) ([]models.Appointment, error)

	// CompleteFinished transitions confirmed appointments that ended before
	// now to completed, returning the number changed.
	CompleteFinished(now time.Time) (int64, error)
	// ExpirePending cancels pending appointments created before the cutoff,
	// returning the number changed. now stamps updated_at.
	ExpirePending(now, cutoff time.Time) (int64, error)

	// Stats computes the admin dashboard aggregates; monthStart bounds the
	// monthly revenue window.
	Stats(monthStart time.Time) (*DashboardStats, error)
	// Recent retrieves the most recently created appointments.
	Recent(limit int64) ([]models.Appointment, error)
}
