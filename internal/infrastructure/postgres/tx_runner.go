package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/packstock-api/internal/application/auth"
	"github.com/jhoicas/packstock-api/internal/application/inventory"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and auth.TxRunner.
var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ auth.TxRunner      = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewSaleRepository(tx))
	})
}

// RunAuth inicia una transacción con repos de administradores e invitaciones (registro).
func (r *TxRunner) RunAuth(ctx context.Context, fn func(
	adminRepo repository.AdminRepository,
	inviteRepo repository.InviteCodeRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewAdminRepository(tx), NewInviteCodeRepository(tx))
	})
}

// inTx: el Rollback diferido no hace nada si ya hubo Commit.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	// Rollback con contexto propio: si ctx se canceló igual hay que liberar la conexión.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		if isTransient(err) && !errors.Is(err, domain.ErrTransientStore) {
			return wrapErr("transaction", err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
