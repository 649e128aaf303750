package models

import (
	"testing"
	"time"
)

func TestWeekdayName(t *testing.T) {
	cases := map[time.Weekday]string{
		time.Sunday:    "sunday",
		time.Monday:    "monday",
		time.Wednesday: "wednesday",
		time.Saturday:  "saturday",
	}
	for day, want := range cases {
		if got := WeekdayName(day); got != want {
			t.Fatalf("expected %q for %v, got %q", want, day, got)
		}
	}
}

func TestValidWeekday(t *testing.T) {
	if !ValidWeekday("tuesday") {
		t.Fatal("expected tuesday to be valid")
	}
	if ValidWeekday("Tuesday") {
		t.Fatal("expected weekday keys to be lowercase only")
	}
	if ValidWeekday("someday") {
		t.Fatal("expected unknown weekday to be invalid")
	}
}

func TestAppointmentStatusOccupiesTime(t *testing.T) {
	if !StatusPending.OccupiesTime() || !StatusConfirmed.OccupiesTime() {
		t.Fatal("pending and confirmed appointments must block the calendar")
	}
	if StatusCompleted.OccupiesTime() || StatusCancelled.OccupiesTime() {
		t.Fatal("completed and cancelled appointments must free the calendar")
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	a := &Appointment{ScheduledAt: base, EndsAt: base.Add(time.Hour)}

	if !a.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)) {
		t.Fatal("expected partial overlap to be detected")
	}
	// Half-open ranges: touching boundaries do not overlap.
	if a.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)) {
		t.Fatal("expected back-to-back ranges not to overlap")
	}
	if a.Overlaps(base.Add(-time.Hour), base) {
		t.Fatal("expected a range ending at the start not to overlap")
	}
}
