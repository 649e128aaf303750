package appointment

import "errors"

var (
	// ErrUnknownService means the service id does not exist or is inactive.
	ErrUnknownService = errors.New("unknown or inactive service")
	// ErrUnknownAgent means the agent id does not exist, is not an agent,
	// or is inactive.
	ErrUnknownAgent = errors.New("unknown or inactive agent")
	// ErrPastTime means the requested start is not in the future.
	ErrPastTime = errors.New("appointment time must be in the future")
	// ErrSlotTaken means a concurrent booking occupies the requested range.
	// Clients should re-query availability and retry.
	ErrSlotTaken = errors.New("requested slot is no longer available")
	// ErrNotFound means no appointment matches the id.
	ErrNotFound = errors.New("appointment not found")
	// ErrForbidden means the caller may not see or change the appointment.
	ErrForbidden = errors.New("not allowed for this appointment")
	// ErrBadStatus means a submitted status is not one of the known states.
	ErrBadStatus = errors.New("invalid appointment status")
)
