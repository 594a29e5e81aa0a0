package auth

import (
	"context"

	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repos de administradores e invitaciones.
type TxRunner interface {
	RunAuth(ctx context.Context, fn func(
		adminRepo repository.AdminRepository,
		inviteRepo repository.InviteCodeRepository,
	) error) error
}
