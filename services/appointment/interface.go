package appointment

import "appointify/models"

// AppointmentService manages the appointment lifecycle: booking, listing,
// status transitions, and cancellation.
type AppointmentService interface {
	// Book creates a pending appointment for the client at the chosen
	// start time, with a payment intent recorded against it.
	Book(client *models.User, req models.CreateAppointmentRequest) (*models.Appointment, error)
	// Get returns one appointment, enforcing role visibility.
	Get(caller *models.User, id string) (*models.Appointment, error)
	// List returns appointments visible to the caller: clients see their
	// own, agents theirs, admins everything (optionally filtered).
	List(caller *models.User, filter models.AppointmentFilter) ([]models.Appointment, error)
	// Update applies a status, notes, or payment-reference change.
	Update(caller *models.User, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error)
	// Cancel transitions an appointment to cancelled.
	Cancel(caller *models.User, id string) error
}
