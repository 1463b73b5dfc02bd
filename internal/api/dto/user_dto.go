package dto

import (
	"strings"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/service"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (r *UserRegisterRequest) messages() map[string]string {
	return map[string]string{
		"name.required":     "The name field is required.",
		"name.min":          "The name must be at least 2 characters.",
		"name.max":          "The name may not be greater than 255 characters.",
		"email.required":    "The email field is required.",
		"email.email":       "Please provide a valid email address.",
		"email.max":         "The email may not be greater than 255 characters.",
		"password.required": "The password field is required.",
		"password.min":      "The password must be at least 8 characters.",
		"password.eqfield":  "The password confirmation does not match.",
	}
}

// Normalize trims name and email. Passwords are taken verbatim.
func (r *UserRegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

func (r *UserLoginRequest) messages() map[string]string {
	return map[string]string{
		"email.required":    "The email field is required.",
		"email.email":       "Please provide a valid email address.",
		"email.max":         "The email may not be greater than 255 characters.",
		"password.required": "The password field is required.",
	}
}

// Normalize trims the email.
func (r *UserLoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// UserSummary is the compact user shape embedded in other responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FarmSummary is the compact farm shape returned on login.
type FarmSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User  UserSummary  `json:"user"`
	Farm  *FarmSummary `json:"farm"`
	Token string       `json:"token"`
}

// NewAuthResponse maps a register/login result.
func NewAuthResponse(res *service.AuthResult) AuthResponse {
	out := AuthResponse{
		User:  newUserSummary(res.User),
		Token: res.Token.Value,
	}
	if res.Farm != nil {
		out.Farm = &FarmSummary{ID: res.Farm.ID, Name: res.Farm.Name}
	}
	return out
}

// UserResponse is returned by GET /user.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: FormatTime(u.CreatedAt),
		UpdatedAt: FormatTime(u.UpdatedAt),
	}
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

func newUserSummary(u *domain.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
