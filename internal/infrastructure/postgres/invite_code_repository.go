package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

var _ repository.InviteCodeRepository = (*InviteCodeRepo)(nil)

// InviteCodeRepo códigos de invitación de administradores.
type InviteCodeRepo struct {
	q Querier
}

// NewInviteCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInviteCodeRepository(q Querier) *InviteCodeRepo {
	return &InviteCodeRepo{q: q}
}

// Create inserta un código nuevo.
func (r *InviteCodeRepo) Create(ctx context.Context, code *entity.InviteCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO admin_invite_codes (id, code, created_by, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		code.ID, code.Code, code.CreatedBy, code.ExpiresAt,
	).Scan(&code.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert invite code", err)
	}
	return nil
}

// GetByCodeForUpdate obtiene el código y bloquea la fila; (nil, nil) si no existe.
func (r *InviteCodeRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.InviteCode, error) {
	var c entity.InviteCode
	err := r.q.QueryRow(ctx, `
		SELECT id, code, created_by, used, used_by, used_at, expires_at, created_at
		FROM admin_invite_codes WHERE code = $1
		FOR UPDATE`, code,
	).Scan(&c.ID, &c.Code, &c.CreatedBy, &c.Used, &c.UsedBy, &c.UsedAt, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get invite code", err)
	}
	return &c, nil
}

// MarkUsed marca el código como consumido por adminID.
func (r *InviteCodeRepo) MarkUsed(ctx context.Context, id, adminID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE admin_invite_codes SET used = TRUE, used_by = $2, used_at = now()
		WHERE id = $1 AND used = FALSE`, id, adminID)
	if err != nil {
		return wrapErr("mark invite used", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInviteUsed
	}
	return nil
}

// List devuelve los códigos (más reciente primero) con los usernames de creador y usuario.
func (r *InviteCodeRepo) List(ctx context.Context, includeUsed bool) ([]*entity.InviteCode, error) {
	query := `
		SELECT c.id, c.code, c.created_by, c.used, c.used_by, c.used_at, c.expires_at, c.created_at,
			creator.username, consumer.username
		FROM admin_invite_codes c
		LEFT JOIN admins creator ON creator.id = c.created_by
		LEFT JOIN admins consumer ON consumer.id = c.used_by`
	if !includeUsed {
		query += ` WHERE c.used = FALSE`
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list invite codes", err)
	}
	defer rows.Close()
	var out []*entity.InviteCode
	for rows.Next() {
		var c entity.InviteCode
		if err := rows.Scan(&c.ID, &c.Code, &c.CreatedBy, &c.Used, &c.UsedBy, &c.UsedAt, &c.ExpiresAt, &c.CreatedAt,
			&c.CreatedByUsername, &c.UsedByUsername); err != nil {
			return nil, wrapErr("scan invite code", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list invite codes", err)
	}
	return out, nil
}

// DeleteUnused borra el código solo si no fue usado.
func (r *InviteCodeRepo) DeleteUnused(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM admin_invite_codes WHERE id = $1 AND used = FALSE`, id)
	if err != nil {
		return false, wrapErr("delete invite code", err)
	}
	return cmd.RowsAffected() > 0, nil
}
