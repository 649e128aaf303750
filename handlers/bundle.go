package handlers

import (
	userRepoPkg "appointify/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration can take a single dependency.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Booking      *BookingHandler
	Appointments *AppointmentHandler
	Agent        *AgentHandler
	Admin        *AdminHandler
	Users        *UserHandler
}
