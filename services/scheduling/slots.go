// Package scheduling computes the bookable time slots for one
// (agent, service, date) triple from the agent's recurring weekly rule,
// the appointments already on the calendar, and ad-hoc blocked intervals.
package scheduling

import (
	"fmt"
	"time"

	"appointify/models"
)

// Candidate slot starts are enumerated on a fixed 30-minute grid regardless
// of service duration, so a 45-minute and a 90-minute service both see
// "10:00" as a candidate.
const slotStride = 30 * time.Minute

// displayLayout renders a 12-hour clock label such as "2:30 PM".
const displayLayout = "3:04 PM"

// GenerateSlots returns the ordered bookable slots for the given calendar
// date. The rule may be nil or marked unavailable, in which case the result
// is empty; an empty result is a normal outcome, never an error.
//
// Appointments and blocked intervals are assumed pre-filtered to ranges
// overlapping the date; no date filtering happens here. The only error case
// is a rule whose start or end time fails to parse.
//
// The function is pure: no clock, no shared state, safe for concurrent use.
func GenerateSlots(
	date time.Time,
	rule *models.AvailabilityRule,
	serviceDurationMinutes int,
	appointments []models.Appointment,
	blocked []models.BlockedInterval,
) ([]models.Slot, error) {
	if rule == nil || !rule.IsAvailable {
		return []models.Slot{}, nil
	}
	if serviceDurationMinutes <= 0 {
		return []models.Slot{}, nil
	}

	windowStart, err := atTimeOfDay(date, rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid rule start time: %w", err)
	}
	windowEnd, err := atTimeOfDay(date, rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid rule end time: %w", err)
	}

	duration := time.Duration(serviceDurationMinutes) * time.Minute

	slots := []models.Slot{}
	// The last slot must fit entirely inside the working window; partial
	// slots are never offered.
	for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(slotStride) {
		end := start.Add(duration)
		if conflicts(start, end, appointments, blocked) {
			continue
		}
		slots = append(slots, models.Slot{
			StartTime:   start,
			EndTime:     end,
			DisplayTime: start.Format(displayLayout),
		})
	}
	return slots, nil
}

// conflicts reports whether the candidate [start, end) intersects any
// appointment or blocked interval, using half-open comparison on both.
func conflicts(start, end time.Time, appointments []models.Appointment, blocked []models.BlockedInterval) bool {
	for i := range appointments {
		if overlaps(start, end, appointments[i].ScheduledAt, appointments[i].EndsAt) {
			return true
		}
	}
	for i := range blocked {
		if overlaps(start, end, blocked[i].StartTime, blocked[i].EndTime) {
			return true
		}
	}
	return false
}

// overlaps is the half-open interval intersection test:
// [aStart, aEnd) and [bStart, bEnd) intersect iff aStart < bEnd && aEnd > bStart.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// atTimeOfDay anchors an "HH:MM" time-of-day on the given calendar date,
// in the date's location.
func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
