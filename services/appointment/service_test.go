package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	appointmentRepo "appointify/database/repository/appointment"
	"appointify/models"
	"appointify/services/scheduling"
)

type fakeAppointmentRepo struct {
	byID     map[string]*models.Appointment
	created  []*models.Appointment
	updated  []*models.Appointment
	listing  []models.Appointment
	takenErr bool
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: map[string]*models.Appointment{}}
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) CreateIfFree(_ context.Context, appt *models.Appointment) error {
	if f.takenErr {
		return appointmentRepo.ErrSlotTaken
	}
	f.created = append(f.created, appt)
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) Update(appt *models.Appointment) error {
	f.updated = append(f.updated, appt)
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeAppointmentRepo) List(filter models.AppointmentFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.listing {
		if filter.ClientID != "" && a.ClientID != filter.ClientID {
			continue
		}
		if filter.AgentID != "" && a.AgentID != filter.AgentID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListOccupyingInRange(string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListUpcoming(string, time.Time, int64) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) CompleteFinished(time.Time) (int64, error) { return 0, nil }
func (f *fakeAppointmentRepo) ExpirePending(time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAppointmentRepo) Stats(time.Time) (*appointmentRepo.DashboardStats, error) {
	return &appointmentRepo.DashboardStats{}, nil
}

func (f *fakeAppointmentRepo) Recent(int64) ([]models.Appointment, error) { return nil, nil }

type fakeServiceRepo struct {
	svc *models.Service
}

func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	if f.svc != nil && f.svc.ID == id {
		return f.svc, nil
	}
	return nil, errors.New("service not found")
}

func (f *fakeServiceRepo) ListActive() ([]models.Service, error) { return nil, nil }
func (f *fakeServiceRepo) ListAll() ([]models.Service, error)    { return nil, nil }
func (f *fakeServiceRepo) Create(*models.Service) error          { return nil }
func (f *fakeServiceRepo) Update(*models.Service) error          { return nil }
func (f *fakeServiceRepo) Delete(string) error                   { return nil }

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) GetByEmail(string) (*models.User, error)       { return nil, nil }
func (f *fakeUserRepo) GetByTokenHash(string) (*models.User, error)   { return nil, nil }
func (f *fakeUserRepo) ListByRole(models.Role) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) CountByRole(models.Role) (int64, error)        { return 0, nil }
func (f *fakeUserRepo) Create(*models.User) error                     { return nil }
func (f *fakeUserRepo) Update(*models.User) error                     { return nil }
func (f *fakeUserRepo) Delete(string) error                           { return nil }

type fakePayments struct {
	ref   string
	err   error
	calls int
}

func (f *fakePayments) CreateIntent(context.Context, *models.Appointment) (string, error) {
	f.calls++
	return f.ref, f.err
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC)
}

func testService(repo *fakeAppointmentRepo) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Appointments: repo,
		Services: &fakeServiceRepo{svc: &models.Service{
			ID:              "svc-1",
			Name:            "Consultation",
			Price:           120,
			DurationMinutes: 60,
			IsActive:        true,
		}},
		Users: &fakeUserRepo{users: map[string]*models.User{
			"agent-1": {ID: "agent-1", Role: models.RoleAgent, IsActive: true},
		}},
		Payments: &fakePayments{ref: "pi_test"},
		Clock:    scheduling.FixedClock{Time: fixedNow()},
	}
}

func client() *models.User {
	return &models.User{ID: "client-1", Role: models.RoleClient, IsActive: true}
}

func TestBook_CreatesPendingAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := testService(repo)

	start := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	appt, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "agent-1",
		ServiceID:   "svc-1",
		ScheduledAt: start,
		Notes:       "first visit",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if appt.Status != models.StatusPending {
		t.Fatalf("expected pending status, got %q", appt.Status)
	}
	if !appt.EndsAt.Equal(start.Add(60 * time.Minute)) {
		t.Fatalf("expected end at start plus service duration, got %v", appt.EndsAt)
	}
	if appt.Amount != 120 {
		t.Fatalf("expected amount 120 from the service price, got %v", appt.Amount)
	}
	if appt.PaymentReference != "pi_test" {
		t.Fatalf("expected payment reference recorded, got %q", appt.PaymentReference)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	// The reference is written back after the insert succeeds.
	if len(repo.updated) != 1 || repo.updated[0].PaymentReference != "pi_test" {
		t.Fatalf("expected the payment reference persisted via update, got %+v", repo.updated)
	}
}

func TestBook_RejectsPastStart(t *testing.T) {
	svc := testService(newFakeAppointmentRepo())

	_, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "agent-1",
		ServiceID:   "svc-1",
		ScheduledAt: fixedNow().Add(-time.Hour),
	})
	if !errors.Is(err, ErrPastTime) {
		t.Fatalf("expected ErrPastTime, got %v", err)
	}
}

func TestBook_RejectsUnknownService(t *testing.T) {
	svc := testService(newFakeAppointmentRepo())

	_, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "agent-1",
		ServiceID:   "missing",
		ScheduledAt: fixedNow().Add(2 * time.Hour),
	})
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}

func TestBook_RejectsNonAgentTarget(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := testService(repo)
	svc.Users = &fakeUserRepo{users: map[string]*models.User{
		"client-2": {ID: "client-2", Role: models.RoleClient, IsActive: true},
	}}

	_, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "client-2",
		ServiceID:   "svc-1",
		ScheduledAt: fixedNow().Add(2 * time.Hour),
	})
	if !errors.Is(err, ErrUnknownAgent) {
		t.Fatalf("expected ErrUnknownAgent, got %v", err)
	}
}

func TestBook_MapsSlotTakenConflict(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.takenErr = true
	svc := testService(repo)

	_, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "agent-1",
		ServiceID:   "svc-1",
		ScheduledAt: fixedNow().Add(2 * time.Hour),
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestBook_NoIntentOnLostRace(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.takenErr = true
	svc := testService(repo)
	payments := &fakePayments{ref: "pi_test"}
	svc.Payments = payments

	_, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "agent-1",
		ServiceID:   "svc-1",
		ScheduledAt: fixedNow().Add(2 * time.Hour),
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	// A lost race is the expected retry path; it must not mint a payment
	// intent that nothing references.
	if payments.calls != 0 {
		t.Fatalf("expected no payment intent on a lost race, got %d", payments.calls)
	}
}

func TestBook_ReleasesSlotOnPaymentFailure(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := testService(repo)
	svc.Payments = &fakePayments{err: errors.New("stripe unavailable")}

	_, err := svc.Book(client(), models.CreateAppointmentRequest{
		AgentID:     "agent-1",
		ServiceID:   "svc-1",
		ScheduledAt: fixedNow().Add(2 * time.Hour),
	})
	if err == nil {
		t.Fatal("expected an error when the payment intent fails")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected the inserted appointment to be released, %d remain", len(repo.byID))
	}
}

func TestList_ScopesToCallerRole(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.listing = []models.Appointment{
		{ID: "a1", ClientID: "client-1", AgentID: "agent-1"},
		{ID: "a2", ClientID: "client-2", AgentID: "agent-1"},
		{ID: "a3", ClientID: "client-1", AgentID: "agent-2"},
	}
	svc := testService(repo)

	got, err := svc.List(client(), models.AppointmentFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the client's 2 appointments, got %d", len(got))
	}

	agent := &models.User{ID: "agent-1", Role: models.RoleAgent}
	got, err = svc.List(agent, models.AppointmentFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the agent's 2 appointments, got %d", len(got))
	}

	admin := &models.User{ID: "admin-1", Role: models.RoleAdmin}
	got, err = svc.List(admin, models.AppointmentFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all 3 appointments for admin, got %d", len(got))
	}
}

func TestGet_EnforcesVisibility(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["a1"] = &models.Appointment{ID: "a1", ClientID: "client-1", AgentID: "agent-1"}
	svc := testService(repo)

	if _, err := svc.Get(client(), "a1"); err != nil {
		t.Fatalf("owner should see own appointment, got %v", err)
	}

	stranger := &models.User{ID: "client-9", Role: models.RoleClient}
	if _, err := svc.Get(stranger, "a1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another client, got %v", err)
	}

	if _, err := svc.Get(client(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["a1"] = &models.Appointment{ID: "a1", ClientID: "client-1"}
	svc := testService(repo)

	bad := "scheduled"
	_, err := svc.Update(client(), "a1", models.UpdateAppointmentRequest{Status: &bad})
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestCancel_MarksCancelled(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["a1"] = &models.Appointment{ID: "a1", ClientID: "client-1", Status: models.StatusConfirmed}
	svc := testService(repo)

	if err := svc.Cancel(client(), "a1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := repo.byID["a1"].Status; got != models.StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", got)
	}
}
