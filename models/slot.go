package models

import "time"

// Slot is one bookable time window offered to a client: the service
// duration anchored at a candidate start inside the agent's working window.
type Slot struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DisplayTime string    `json:"display_time"`
}

// AvailabilityResponse is the slot-query payload: the looked-up service and
// agent plus the ordered bookable slots for the requested date.
type AvailabilityResponse struct {
	Service        Service    `json:"service"`
	Agent          PublicUser `json:"agent"`
	AvailableSlots []Slot     `json:"available_slots"`
}
