package models

import (
	"strings"
	"time"
)

// AvailabilityRule is an agent's recurring working window for one weekday.
// One rule per agent per weekday; saving a week replaces all of them.
// Start and End are times of day in "HH:MM" 24-hour form.
type AvailabilityRule struct {
	ID          string    `bson:"id" json:"id"`
	AgentID     string    `bson:"agent_id" json:"agentId"`
	DayOfWeek   string    `bson:"day_of_week" json:"dayOfWeek"`
	StartTime   string    `bson:"start_time" json:"startTime"`
	EndTime     string    `bson:"end_time" json:"endTime"`
	IsAvailable bool      `bson:"is_available" json:"isAvailable"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// BlockedInterval is an ad-hoc, date-specific unavailability window for an
// agent. End must be after Start; intervals are never reconciled against
// each other, only against candidate slots.
type BlockedInterval struct {
	ID        string    `bson:"id" json:"id"`
	AgentID   string    `bson:"agent_id" json:"agentId"`
	StartTime time.Time `bson:"start_time" json:"startTime"`
	EndTime   time.Time `bson:"end_time" json:"endTime"`
	Reason    string    `bson:"reason" json:"reason"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// WeekdayName returns the lowercase weekday key used by availability rules,
// e.g. "monday".
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ValidWeekday reports whether s is one of the seven weekday keys.
func ValidWeekday(s string) bool {
	switch s {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}

// AvailabilityRuleInput is one weekday entry in a weekly availability update.
type AvailabilityRuleInput struct {
	DayOfWeek   string `json:"dayOfWeek" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable bool   `json:"isAvailable"`
}

// SaveAvailabilityRequest replaces an agent's weekly availability wholesale.
type SaveAvailabilityRequest struct {
	Rules []AvailabilityRuleInput `json:"rules" binding:"required,min=1,max=7"`
}

// BlockTimeRequest creates a blocked interval for the calling agent.
type BlockTimeRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Reason    string    `json:"reason" binding:"max=255"`
}
