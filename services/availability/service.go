package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"appointify/config"
	appointmentRepo "appointify/database/repository/appointment"
	availabilityRepo "appointify/database/repository/availability"
	serviceRepo "appointify/database/repository/service"
	userRepo "appointify/database/repository/user"
	"appointify/models"
	"appointify/services/scheduling"
	"appointify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Rules        availabilityRepo.AvailabilityRepository
	Appointments appointmentRepo.AppointmentRepository
	Services     serviceRepo.ServiceRepository
	Users        userRepo.UserRepository
	Cache        *redis.Client
	Clock        scheduling.Clock
}

// GetAvailability computes the bookable slots for an agent, service and date.
// Responses are cached briefly in Redis; a booking landing inside the TTL is
// still caught by the transactional re-check at creation time.
func (s *DefaultAvailabilityService) GetAvailability(serviceID, agentID, date string) (*models.AvailabilityResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrBadDate
	}
	today := s.Clock.Now()
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, day.Location())
	if day.Before(todayMidnight) {
		return nil, ErrPastDate
	}

	svc, err := s.Services.GetByID(serviceID)
	if err != nil || !svc.IsActive {
		return nil, ErrUnknownService
	}
	agent, err := s.Users.GetByID(agentID)
	if err != nil || agent.Role != models.RoleAgent || !agent.IsActive {
		return nil, ErrUnknownAgent
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s", agentID, serviceID, date)
	if cached := s.cachedResponse(cacheKey); cached != nil {
		return cached, nil
	}

	rule, err := s.Rules.GetRuleForDay(agentID, models.WeekdayName(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load availability rule: %w", err)
	}

	resp := &models.AvailabilityResponse{
		Service:        *svc,
		Agent:          agent.Public(),
		AvailableSlots: []models.Slot{},
	}

	// No rule, or the agent marked the day unavailable: an empty slot list
	// is the answer, not an error.
	if rule != nil && rule.IsAvailable {
		dayStart := day
		dayEnd := day.AddDate(0, 0, 1)

		appts, err := s.Appointments.ListOccupyingInRange(agentID, dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load appointments: %w", err)
		}
		blocked, err := s.Rules.ListBlockedInRange(agentID, dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load blocked intervals: %w", err)
		}

		slots, err := scheduling.GenerateSlots(day, rule, svc.DurationMinutes, appts, blocked)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slots: %w", err)
		}
		resp.AvailableSlots = slots
	}

	s.cacheResponse(cacheKey, resp)
	return resp, nil
}

func (s *DefaultAvailabilityService) cachedResponse(key string) *models.AvailabilityResponse {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(context.Background(), key).Result()
	if err != nil {
		return nil
	}
	var resp models.AvailabilityResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *DefaultAvailabilityService) cacheResponse(key string, resp *models.AvailabilityResponse) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	ttl := time.Duration(config.AppConfig.SlotCacheTTL) * time.Second
	if err := s.Cache.Set(context.Background(), key, data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability response", zap.String("key", key), zap.Error(err))
	}
}

// ListRules returns the agent's weekly availability rules.
func (s *DefaultAvailabilityService) ListRules(agentID string) ([]models.AvailabilityRule, error) {
	return s.Rules.ListRules(agentID)
}

// SaveWeek replaces the agent's weekly availability wholesale. One rule per
// weekday; the latest submitted set wins.
func (s *DefaultAvailabilityService) SaveWeek(agentID string, req models.SaveAvailabilityRequest) ([]models.AvailabilityRule, error) {
	now := s.Clock.Now()
	seen := map[string]bool{}
	rules := make([]models.AvailabilityRule, 0, len(req.Rules))

	for _, in := range req.Rules {
		if !models.ValidWeekday(in.DayOfWeek) {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrBadRule, in.DayOfWeek)
		}
		if seen[in.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate weekday %q", ErrBadRule, in.DayOfWeek)
		}
		seen[in.DayOfWeek] = true

		start, err := time.Parse("15:04", in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: bad start time %q", ErrBadRule, in.StartTime)
		}
		end, err := time.Parse("15:04", in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: bad end time %q", ErrBadRule, in.EndTime)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: end %q not after start %q", ErrBadRule, in.EndTime, in.StartTime)
		}

		rules = append(rules, models.AvailabilityRule{
			ID:          uuid.New().String(),
			AgentID:     agentID,
			DayOfWeek:   in.DayOfWeek,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			IsAvailable: in.IsAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.Rules.ReplaceWeek(agentID, rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// BlockTime records an ad-hoc blocked interval for the agent. The interval
// must lie in the future and end after it starts.
func (s *DefaultAvailabilityService) BlockTime(agentID string, req models.BlockTimeRequest) (*models.BlockedInterval, error) {
	now := s.Clock.Now()
	if !req.StartTime.After(now) {
		return nil, fmt.Errorf("%w: start must be in the future", ErrBadInterval)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, fmt.Errorf("%w: end must be after start", ErrBadInterval)
	}

	reason := req.Reason
	if reason == "" {
		reason = "Unavailable"
	}

	blocked := &models.BlockedInterval{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := s.Rules.CreateBlocked(blocked); err != nil {
		return nil, err
	}
	return blocked, nil
}
