package availabilityRepo

import (
	"time"

	"appointify/models"
)

// AvailabilityRepository stores agents' recurring weekly rules and ad-hoc
// blocked intervals.
type AvailabilityRepository interface {
	// GetRuleForDay retrieves the agent's rule for one weekday key, or nil
	// when none exists. Absence is a normal outcome, not an error.
	GetRuleForDay(agentID, dayOfWeek string) (*models.AvailabilityRule, error)
	// ListRules retrieves all of an agent's weekly rules.
	ListRules(agentID string) ([]models.AvailabilityRule, error)
	// ReplaceWeek deletes the agent's existing rules and inserts the given
	// set, so the latest submitted week always wins.
	ReplaceWeek(agentID string, rules []models.AvailabilityRule) error

	// CreateBlocked inserts a blocked interval.
	CreateBlocked(blocked *models.BlockedInterval) error
	// ListBlockedInRange retrieves the agent's blocked intervals overlapping
	// [from, to).
	ListBlockedInRange(agentID string, from, to time.Time) ([]models.BlockedInterval, error)
}
