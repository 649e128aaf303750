// Package agent serves the agent-facing dashboard figures.
package agent

import (
	"time"

	appointmentRepo "appointify/database/repository/appointment"
	"appointify/models"
	"appointify/services/scheduling"
)

// MonthlyStats summarizes the agent's current calendar month.
type MonthlyStats struct {
	TotalAppointments     int     `json:"total_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	TotalRevenue          float64 `json:"total_revenue"`
}

// Dashboard is the agent landing payload.
type Dashboard struct {
	UpcomingAppointments []models.Appointment `json:"upcoming_appointments"`
	TodayAppointments    []models.Appointment `json:"today_appointments"`
	MonthlyStats         MonthlyStats         `json:"monthly_stats"`
}

// AgentService computes agent dashboards.
type AgentService interface {
	Dashboard(agentID string) (*Dashboard, error)
}

// DefaultAgentService is the production implementation.
type DefaultAgentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Clock        scheduling.Clock
}

// Dashboard returns the next five appointments, today's schedule, and
// figures for the current month.
func (s *DefaultAgentService) Dashboard(agentID string) (*Dashboard, error) {
	now := s.Clock.Now()

	upcoming, err := s.Appointments.ListUpcoming(agentID, now, 5)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.Appointments.List(models.AppointmentFilter{
		AgentID:  agentID,
		DateFrom: dayStart,
		DateTo:   dayStart.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthly, err := s.Appointments.List(models.AppointmentFilter{
		AgentID:  agentID,
		DateFrom: monthStart,
		DateTo:   monthStart.AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, err
	}

	stats := MonthlyStats{TotalAppointments: len(monthly)}
	for _, a := range monthly {
		if a.Status == models.StatusCompleted {
			stats.CompletedAppointments++
			stats.TotalRevenue += a.Amount
		}
	}

	return &Dashboard{
		UpcomingAppointments: upcoming,
		TodayAppointments:    today,
		MonthlyStats:         stats,
	}, nil
}
