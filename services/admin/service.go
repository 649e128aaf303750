// Package admin serves the admin dashboard aggregates.
package admin

import (
	"time"

	appointmentRepo "appointify/database/repository/appointment"
	"appointify/models"
	"appointify/services/scheduling"
	"appointify/services/user"
)

// DashboardStats are the headline figures on the admin landing page.
type DashboardStats struct {
	TotalAppointments int64   `json:"total_appointments"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	TotalAgents       int64   `json:"total_agents"`
	TotalClients      int64   `json:"total_clients"`
}

// Dashboard is the admin landing payload.
type Dashboard struct {
	Stats              DashboardStats       `json:"stats"`
	RecentAppointments []models.Appointment `json:"recent_appointments"`
}

// AdminService computes admin dashboards.
type AdminService interface {
	Dashboard() (*Dashboard, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Appointments appointmentRepo.AppointmentRepository
	Users        user.UserService
	Clock        scheduling.Clock
}

// Dashboard returns platform-wide totals, the current month's revenue, and
// the five most recent appointments.
func (s *DefaultAdminService) Dashboard() (*Dashboard, error) {
	now := s.Clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	apptStats, err := s.Appointments.Stats(monthStart)
	if err != nil {
		return nil, err
	}
	agents, err := s.Users.CountByRole(models.RoleAgent)
	if err != nil {
		return nil, err
	}
	clients, err := s.Users.CountByRole(models.RoleClient)
	if err != nil {
		return nil, err
	}
	recent, err := s.Appointments.Recent(5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats: DashboardStats{
			TotalAppointments: apptStats.TotalAppointments,
			TotalRevenue:      apptStats.TotalRevenue,
			MonthlyRevenue:    apptStats.MonthlyRevenue,
			TotalAgents:       agents,
			TotalClients:      clients,
		},
		RecentAppointments: recent,
	}, nil
}
