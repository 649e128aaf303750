package cron

import (
	"context"
	"testing"
	"time"

	appointmentRepo "appointify/database/repository/appointment"
	"appointify/models"
	"appointify/services/scheduling"

	"github.com/hibiken/asynq"
)

type fakeSweepRepo struct {
	completedAt time.Time
	expiredNow  time.Time
	expiredCut  time.Time
}

func (f *fakeSweepRepo) GetByID(string) (*models.Appointment, error) { return nil, nil }
func (f *fakeSweepRepo) CreateIfFree(context.Context, *models.Appointment) error {
	return nil
}
func (f *fakeSweepRepo) Update(*models.Appointment) error { return nil }
func (f *fakeSweepRepo) Delete(string) error { return nil }
func (f *fakeSweepRepo) List(models.AppointmentFilter) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeSweepRepo) ListOccupyingInRange(string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeSweepRepo) ListUpcoming(string, time.Time, int64) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeSweepRepo) CompleteFinished(now time.Time) (int64, error) {
	f.completedAt = now
	return 1, nil
}

func (f *fakeSweepRepo) ExpirePending(now, cutoff time.Time) (int64, error) {
	f.expiredNow = now
	f.expiredCut = cutoff
	return 1, nil
}

func (f *fakeSweepRepo) Stats(time.Time) (*appointmentRepo.DashboardStats, error) {
	return &appointmentRepo.DashboardStats{}, nil
}

func (f *fakeSweepRepo) Recent(int64) ([]models.Appointment, error) { return nil, nil }

func TestSweep_UsesOneClockInstant(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	repo := &fakeSweepRepo{}
	handler := handleSweepTask(repo, scheduling.FixedClock{Time: now})

	task := asynq.NewTask(TypeLifecycleSweep, nil)
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !repo.completedAt.Equal(now) {
		t.Fatalf("expected completion sweep at the clock instant, got %v", repo.completedAt)
	}
	// Every timestamp in one sweep comes from the same clock reading.
	if !repo.expiredNow.Equal(now) {
		t.Fatalf("expected expiry stamp at the clock instant, got %v", repo.expiredNow)
	}
	// Default hold is 30 minutes when unconfigured.
	if !repo.expiredCut.Equal(now.Add(-30 * time.Minute)) {
		t.Fatalf("expected a 30-minute hold cutoff, got %v", repo.expiredCut)
	}
}
