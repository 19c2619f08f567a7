package models

import (
	"strings"
	"time"
)

// User represents a user in the database.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Public returns the fields safe to send to clients.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicUser is the client-facing view of a user.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterRequest defines the structure for a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"looseemail"`
	Password string `json:"password" validate:"min=6"`
}

var registerMessages = map[string]string{
	"name":     "Name must be at least 2 characters",
	"email":    "Please enter a valid email",
	"password": "Password must be at least 6 characters",
}

// Normalize trims the name and trims and lowercases the email.
// The password is left untouched.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks the request against the registration rules.
func (r *RegisterRequest) Validate() error {
	return validateStruct(r, registerMessages)
}

// LoginRequest defines the structure for a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims and lowercases the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	User    *PublicUser `json:"user"`
}

// MeResponse is returned by GET /api/auth/me.
type MeResponse struct {
	User *PublicUser `json:"user"`
}
