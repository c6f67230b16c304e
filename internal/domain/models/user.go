package models

import "time"

// User is an authenticated account. PasswordHash never leaves the server.
type User struct {
	ID            string    `bson:"_id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	Name          string    `bson:"name" json:"name"`
	Role          Role      `bson:"role" json:"role"`
	CooperativeID string    `bson:"cooperative_id,omitempty" json:"cooperative_id,omitempty"`
	PasswordHash  string    `bson:"password" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// IsOfficer reports whether the user holds the privileged role.
func (u User) IsOfficer() bool {
	return u.Role == RoleOfficer
}

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Name          string `json:"name" binding:"required"`
	Role          Role   `json:"role" binding:"required"`
	CooperativeID string `json:"cooperative_id"`
}

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned after a successful registration or login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}
