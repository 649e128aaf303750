package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "appointify/database/repository/appointment"
	serviceRepo "appointify/database/repository/service"
	userRepo "appointify/database/repository/user"
	"appointify/models"
	"appointify/services/scheduling"
	"appointify/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Services     serviceRepo.ServiceRepository
	Users        userRepo.UserRepository
	Payments     PaymentHandler
	Clock        scheduling.Clock
}

// Book validates the request, computes the end time and amount from the
// service, and inserts the appointment through the transactional overlap
// re-check. A losing concurrent booking surfaces as ErrSlotTaken. The
// payment intent is only created once the insert has succeeded, so a lost
// race never leaves an orphaned intent behind.
func (s *DefaultAppointmentService) Book(client *models.User, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	svc, err := s.Services.GetByID(req.ServiceID)
	if err != nil || !svc.IsActive {
		return nil, ErrUnknownService
	}
	agent, err := s.Users.GetByID(req.AgentID)
	if err != nil || agent.Role != models.RoleAgent || !agent.IsActive {
		return nil, ErrUnknownAgent
	}

	now := s.Clock.Now()
	if !req.ScheduledAt.After(now) {
		return nil, ErrPastTime
	}

	appt := &models.Appointment{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		AgentID:     agent.ID,
		ServiceID:   svc.ID,
		ScheduledAt: req.ScheduledAt,
		EndsAt:      req.ScheduledAt.Add(svc.Duration()),
		Status:      models.StatusPending,
		Amount:      svc.Price,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Appointments.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	ref, err := s.Payments.CreateIntent(context.Background(), appt)
	if err != nil {
		// Release the slot; the client can retry once payments recover.
		if delErr := s.Appointments.Delete(appt.ID); delErr != nil {
			utils.GetLogger().Warn("failed to release appointment after payment failure",
				zap.String("appointment", appt.ID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("payment bookkeeping failed: %w", err)
	}
	appt.PaymentReference = ref
	if err := s.Appointments.Update(appt); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Appointment booked",
		zap.String("appointment", appt.ID),
		zap.String("agent", appt.AgentID),
		zap.String("client", appt.ClientID),
		zap.Time("scheduledAt", appt.ScheduledAt))
	return appt, nil
}

// Get returns one appointment, enforcing role visibility.
func (s *DefaultAppointmentService) Get(caller *models.User, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.mayAccess(caller, appt) {
		return nil, ErrForbidden
	}
	return appt, nil
}

// List returns appointments visible to the caller.
func (s *DefaultAppointmentService) List(caller *models.User, filter models.AppointmentFilter) ([]models.Appointment, error) {
	switch caller.Role {
	case models.RoleClient:
		filter.ClientID = caller.ID
		filter.AgentID = ""
	case models.RoleAgent:
		filter.AgentID = caller.ID
		filter.ClientID = ""
	case models.RoleAdmin:
		// Admins see everything; the filter passes through untouched.
	default:
		return nil, ErrForbidden
	}
	return s.Appointments.List(filter)
}

// Update applies a status, notes, or payment-reference change. Confirming
// is how the external payment flow reports completion.
func (s *DefaultAppointmentService) Update(caller *models.User, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	appt, err := s.Get(caller, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := models.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, ErrBadStatus
		}
		appt.Status = status
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	if req.PaymentReference != nil {
		appt.PaymentReference = *req.PaymentReference
	}
	appt.UpdatedAt = s.Clock.Now()

	if err := s.Appointments.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel transitions an appointment to cancelled, freeing its time range
// for future bookings.
func (s *DefaultAppointmentService) Cancel(caller *models.User, id string) error {
	appt, err := s.Get(caller, id)
	if err != nil {
		return err
	}
	appt.Status = models.StatusCancelled
	appt.UpdatedAt = s.Clock.Now()
	return s.Appointments.Update(appt)
}

// mayAccess implements the role visibility rule: clients their own, agents
// theirs, admins everything.
func (s *DefaultAppointmentService) mayAccess(caller *models.User, appt *models.Appointment) bool {
	switch caller.Role {
	case models.RoleAdmin:
		return true
	case models.RoleAgent:
		return appt.AgentID == caller.ID
	case models.RoleClient:
		return appt.ClientID == caller.ID
	default:
		return false
	}
}
