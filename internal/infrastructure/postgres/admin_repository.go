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

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación del puerto AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// Create persiste un administrador. Username o email repetidos devuelven domain.ErrDuplicate.
func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO admins (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		admin.ID, admin.Username, admin.Email, admin.PasswordHash,
	).Scan(&admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert admin", err)
	}
	return nil
}

// GetByID obtiene un administrador; (nil, nil) si no existe.
func (r *AdminRepo) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "get admin", `SELECT id, username, email, password_hash, created_at FROM admins WHERE id = $1`, id)
}

// GetByUsername obtiene un administrador por username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	return r.findOne(ctx, "get admin by username", `SELECT id, username, email, password_hash, created_at FROM admins WHERE username = $1`, username)
}

func (r *AdminRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Admin, error) {
	var a entity.Admin
	err := r.q.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return &a, nil
}

// ExistsByUsernameOrEmail indica si ya hay un administrador con ese username o email.
func (r *AdminRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE username = $1 OR email = $2)`, username, email,
	).Scan(&exists)
	if err != nil {
		return false, wrapErr("exists admin", err)
	}
	return exists, nil
}

// Count total de administradores.
func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, wrapErr("count admins", err)
	}
	return n, nil
}
