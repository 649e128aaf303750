package user

import (
	"errors"
	"fmt"
	"time"

	userRepo "appointify/database/repository/user"
	"appointify/models"
	"appointify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenLifetime is how long an issued bearer token stays valid.
const tokenLifetime = 72 * time.Hour

var (
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadCredentials covers unknown email and wrong password alike.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrBadRole means the submitted role string is not a known role.
	ErrBadRole = errors.New("invalid role")
	// ErrNotFound means no account matches the id.
	ErrNotFound = errors.New("user not found")
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}

// Register creates an account and returns it with a bearer token.
func (s *DefaultUserService) Register(req models.RegisterUserRequest) (*models.AuthResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, ErrBadRole
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: email lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The account must exist before any token or session does; a failed
	// insert must not leave a live session behind.
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	return &models.AuthResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, nil
}

// Authenticate verifies credentials and issues a fresh bearer token.
func (s *DefaultUserService) Authenticate(req models.AuthRequest) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: email lookup failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if u == nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}

	return &models.AuthResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, nil
}

// issueToken signs a JWT, stores its hash on the user, and records the
// session in Redis keyed by that hash.
func (s *DefaultUserService) issueToken(u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Role.String(), tokenLifetime)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	hash := utils.HashToken(token)
	u.TokenHash = hash

	if s.AuthCache != nil {
		session := utils.AuthSession{
			UserID:    u.ID,
			Email:     u.Email,
			Role:      u.Role.String(),
			CreatedAt: time.Now(),
		}
		if err := utils.SaveAuthSession(s.AuthCache, hash, session, tokenLifetime); err != nil {
			utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
		}
	}
	return token, nil
}

// GetByID retrieves an account.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update applies profile changes.
func (s *DefaultUserService) Update(id string, req models.UpdateUserRequest) (*models.User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.UpdatedAt = time.Now()

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account.
func (s *DefaultUserService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RevokeToken invalidates the account's current bearer token by dropping
// both the stored hash and the Redis session.
func (s *DefaultUserService) RevokeToken(id string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if u.TokenHash != "" && s.AuthCache != nil {
		if err := utils.DeleteAuthSession(s.AuthCache, u.TokenHash); err != nil {
			utils.GetLogger().Warn("failed to delete auth session", zap.Error(err))
		}
	}
	u.TokenHash = ""
	u.UpdatedAt = time.Now()
	return s.Repo.Update(u)
}

// ListAgents returns all agent accounts.
func (s *DefaultUserService) ListAgents() ([]models.User, error) {
	return s.Repo.ListByRole(models.RoleAgent)
}

// ListActiveAgents returns active agent accounts only.
func (s *DefaultUserService) ListActiveAgents() ([]models.User, error) {
	agents, err := s.Repo.ListByRole(models.RoleAgent)
	if err != nil {
		return nil, err
	}
	active := agents[:0]
	for _, a := range agents {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

// CountByRole counts accounts per role for dashboards.
func (s *DefaultUserService) CountByRole(role models.Role) (int64, error) {
	return s.Repo.CountByRole(role)
}
