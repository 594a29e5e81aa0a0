package entity

import "time"

// Admin usuario administrador de la tienda. Solo se crea con un código de invitación
// (o con cmd/create_admin para el primero).
type Admin struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	CreatedAt    time.Time
}

// InviteCode código de un solo uso para registrar un nuevo administrador.
type InviteCode struct {
	ID        string
	Code      string
	CreatedBy *string
	Used      bool
	UsedBy    *string
	UsedAt    *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time

	// Nombres resueltos al listar (JOIN con admins).
	CreatedByUsername *string
	UsedByUsername    *string
}

// IsExpired indica si el código venció respecto a now.
func (c *InviteCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
