package dto

import "time"

// RegisterRequest entrada para registro de administrador con código de invitación.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,password"`
	InviteCode string `json:"invite_code" validate:"required,len=32"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse salida de un administrador (sin password).
type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse salida con token JWT.
type AuthResponse struct {
	Message string        `json:"message"`
	Admin   AdminResponse `json:"admin"`
	Token   string        `json:"token"`
}

// GenerateInviteRequest body para POST /api/auth/invites.
type GenerateInviteRequest struct {
	ExpiresInDays int `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

// InviteCodeResponse código de invitación.
type InviteCodeResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Used      bool       `json:"used"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty"`
	UsedBy    *string    `json:"used_by,omitempty"`
}
