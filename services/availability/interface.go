package availability

import "appointify/models"

// AvailabilityService answers slot queries and manages agents' weekly
// rules and blocked intervals.
type AvailabilityService interface {
	// GetAvailability computes the bookable slots for an agent, service and
	// date ("YYYY-MM-DD", today or later).
	GetAvailability(serviceID, agentID, date string) (*models.AvailabilityResponse, error)

	// ListRules returns the agent's weekly availability rules.
	ListRules(agentID string) ([]models.AvailabilityRule, error)
	// SaveWeek replaces the agent's weekly availability wholesale.
	SaveWeek(agentID string, req models.SaveAvailabilityRequest) ([]models.AvailabilityRule, error)
	// BlockTime records an ad-hoc blocked interval for the agent.
	BlockTime(agentID string, req models.BlockTimeRequest) (*models.BlockedInterval, error)
}
