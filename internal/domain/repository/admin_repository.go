package repository

import (
	"context"

	"github.com/jhoicas/packstock-api/internal/domain/entity"
)

// AdminRepository puerto de persistencia para administradores.
type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	GetByUsername(ctx context.Context, username string) (*entity.Admin, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// InviteCodeRepository puerto de persistencia para códigos de invitación.
type InviteCodeRepository interface {
	Create(ctx context.Context, code *entity.InviteCode) error
	// GetByCodeForUpdate bloquea el código para que dos registros no lo consuman a la vez.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.InviteCode, error)
	MarkUsed(ctx context.Context, id, adminID string) error
	List(ctx context.Context, includeUsed bool) ([]*entity.InviteCode, error)
	// DeleteUnused borra el código si no fue usado; false si no existe o ya se usó.
	DeleteUnused(ctx context.Context, id string) (bool, error)
}
