package models

import "time"

// User is an account in any of the three roles. Agents additionally own
// availability rules and blocked intervals; clients own appointments.
type User struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Role            Role      `bson:"role" json:"role"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	TokenHash       string    `bson:"token_hash,omitempty" json:"-"`
	StripeAccountID string    `bson:"stripe_account_id,omitempty" json:"stripeAccountId,omitempty"`
	IsActive        bool      `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the projection of a user safe to return to other callers.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}

// Public strips credential fields from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// RegisterUserRequest is the payload for account registration.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// AuthRequest is the payload for login.
type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued bearer token alongside the account.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

// UpdateUserRequest is the payload for profile updates.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
