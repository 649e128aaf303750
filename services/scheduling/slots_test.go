package scheduling

import (
	"testing"
	"time"

	"appointify/models"
)

func mustTime(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func workdayRule(start, end string) *models.AvailabilityRule {
	return &models.AvailabilityRule{
		AgentID:     "agent-1",
		DayOfWeek:   "wednesday",
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func testDate(t *testing.T) time.Time {
	t.Helper()
	// A Wednesday.
	return time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
}

func appt(t *testing.T, startHour, startMin, endHour, endMin int) models.Appointment {
	t.Helper()
	return models.Appointment{
		AgentID:     "agent-1",
		ScheduledAt: mustTime(t, 2025, 6, 4, startHour, startMin),
		EndsAt:      mustTime(t, 2025, 6, 4, endHour, endMin),
		Status:      models.StatusConfirmed,
	}
}

func TestGenerateSlots_FullDayNoConflicts(t *testing.T) {
	slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "17:00"), 60, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 09:00 through 16:00 inclusive on a 30-minute grid; 16:30 would end
	// at 17:30 and must be rejected.
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(mustTime(t, 2025, 6, 4, 9, 0)) {
		t.Fatalf("expected first slot at 09:00, got %v", slots[0].StartTime)
	}
	last := slots[len(slots)-1]
	if !last.StartTime.Equal(mustTime(t, 2025, 6, 4, 16, 0)) {
		t.Fatalf("expected last slot at 16:00, got %v", last.StartTime)
	}
	if !last.EndTime.Equal(mustTime(t, 2025, 6, 4, 17, 0)) {
		t.Fatalf("expected last slot to end at 17:00, got %v", last.EndTime)
	}
}

func TestGenerateSlots_SlotInvariants(t *testing.T) {
	duration := 45
	slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "17:00"), duration, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	windowStart := mustTime(t, 2025, 6, 4, 9, 0)
	windowEnd := mustTime(t, 2025, 6, 4, 17, 0)
	for i, s := range slots {
		if got := s.EndTime.Sub(s.StartTime); got != time.Duration(duration)*time.Minute {
			t.Fatalf("slot %d: expected duration %dm, got %v", i, duration, got)
		}
		if s.StartTime.Before(windowStart) {
			t.Fatalf("slot %d starts before the working window: %v", i, s.StartTime)
		}
		if s.EndTime.After(windowEnd) {
			t.Fatalf("slot %d ends after the working window: %v", i, s.EndTime)
		}
		if i > 0 {
			gap := s.StartTime.Sub(slots[i-1].StartTime)
			if gap <= 0 {
				t.Fatalf("slot starts are not strictly increasing at %d", i)
			}
			if gap%(30*time.Minute) != 0 {
				t.Fatalf("slot %d is off the 30-minute grid: gap %v", i, gap)
			}
		}
	}
}

func TestGenerateSlots_StrideIndependentOfDuration(t *testing.T) {
	// Two different durations both see 10:00 as a candidate: the stride is
	// a fixed 30-minute grid, not packed back-to-back by duration.
	for _, duration := range []int{45, 90} {
		slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "17:00"), duration, nil, nil)
		if err != nil {
			t.Fatalf("duration %d: expected no error, got %v", duration, err)
		}
		found := false
		for _, s := range slots {
			if s.StartTime.Equal(mustTime(t, 2025, 6, 4, 10, 0)) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("duration %d: expected a 10:00 candidate", duration)
		}
	}
}

func TestGenerateSlots_NilRule(t *testing.T) {
	slots, err := GenerateSlots(testDate(t), nil, 60, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots without a rule, got %d", len(slots))
	}
}

func TestGenerateSlots_UnavailableRule(t *testing.T) {
	rule := workdayRule("09:00", "17:00")
	rule.IsAvailable = false

	slots, err := GenerateSlots(testDate(t), rule, 60, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for an unavailable rule, got %d", len(slots))
	}
}

func TestGenerateSlots_DurationExceedsWindow(t *testing.T) {
	slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "10:00"), 90, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots when duration exceeds the window, got %d", len(slots))
	}
}

func TestGenerateSlots_AppointmentConflict(t *testing.T) {
	// One appointment 10:00-11:00, 60-minute service. The half-open check
	// keeps 09:00 (ends exactly at 10:00) and 11:00 (starts exactly at the
	// appointment end) but drops 09:30, 10:00 and 10:30.
	existing := []models.Appointment{appt(t, 10, 0, 11, 0)}

	slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "17:00"), 60, existing, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	starts := map[string]bool{}
	for _, s := range slots {
		starts[s.StartTime.Format("15:04")] = true
	}
	for _, rejected := range []string{"09:30", "10:00", "10:30"} {
		if starts[rejected] {
			t.Fatalf("expected %s to be rejected", rejected)
		}
	}
	for _, kept := range []string{"09:00", "11:00"} {
		if !starts[kept] {
			t.Fatalf("expected %s to survive the half-open boundary", kept)
		}
	}
}

func TestGenerateSlots_BlockedIntervalConflict(t *testing.T) {
	blocked := []models.BlockedInterval{{
		AgentID:   "agent-1",
		StartTime: mustTime(t, 2025, 6, 4, 12, 0),
		EndTime:   mustTime(t, 2025, 6, 4, 13, 0),
		Reason:    "lunch",
	}}

	slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "17:00"), 60, nil, blocked)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, s := range slots {
		if s.StartTime.Before(mustTime(t, 2025, 6, 4, 13, 0)) &&
			s.EndTime.After(mustTime(t, 2025, 6, 4, 12, 0)) {
			t.Fatalf("slot %v-%v intersects the blocked interval", s.StartTime, s.EndTime)
		}
	}
	// 11:00 ends exactly at 12:00 and 13:00 starts at the block end; both
	// must survive.
	starts := map[string]bool{}
	for _, s := range slots {
		starts[s.StartTime.Format("15:04")] = true
	}
	if !starts["11:00"] || !starts["13:00"] {
		t.Fatalf("expected boundary slots 11:00 and 13:00 to survive, got %v", starts)
	}
}

func TestGenerateSlots_DisplayTime(t *testing.T) {
	slots, err := GenerateSlots(testDate(t), workdayRule("14:00", "16:00"), 60, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if slots[0].DisplayTime != "2:00 PM" {
		t.Fatalf("expected display time %q, got %q", "2:00 PM", slots[0].DisplayTime)
	}
	if slots[1].DisplayTime != "2:30 PM" {
		t.Fatalf("expected display time %q, got %q", "2:30 PM", slots[1].DisplayTime)
	}
}

func TestGenerateSlots_MalformedRuleTime(t *testing.T) {
	if _, err := GenerateSlots(testDate(t), workdayRule("9am", "17:00"), 60, nil, nil); err == nil {
		t.Fatal("expected an error for a malformed rule time")
	}
}

func TestGenerateSlots_ExactFit(t *testing.T) {
	// Duration equal to the whole window yields exactly one slot.
	slots, err := GenerateSlots(testDate(t), workdayRule("09:00", "10:00"), 60, nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected exactly one slot, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(mustTime(t, 2025, 6, 4, 9, 0)) {
		t.Fatalf("expected the slot at 09:00, got %v", slots[0].StartTime)
	}
}
