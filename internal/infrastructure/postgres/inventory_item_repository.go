package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, name, pack_size, packs_in_stock, pieces_in_stock,
	selling_price_pack, purchase_price_pack, selling_price_piece, purchase_price_piece,
	low_stock_threshold, low_stock_notified, created_at, updated_at`

// InventoryItemRepo implementación del libro de stock sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Name, &it.PackSize, &it.PacksInStock, &it.PiecesInStock,
		&it.SellingPricePack, &it.PurchasePricePack, &it.SellingPricePiece, &it.PurchasePricePiece,
		&it.LowStockThreshold, &it.LowStockNotified, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// getOne ejecuta una consulta de una fila; (nil, nil) si no hay fila.
func (r *InventoryItemRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return it, nil
}

func (r *InventoryItemRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}

// Create inserta un artículo. Si no trae ID se genera uno.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, name, pack_size, packs_in_stock, pieces_in_stock,
			selling_price_pack, purchase_price_pack, selling_price_piece, purchase_price_piece,
			low_stock_threshold, low_stock_notified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		item.ID, item.Name, item.PackSize, item.PacksInStock, item.PiecesInStock,
		item.SellingPricePack, item.PurchasePricePack, item.SellingPricePiece, item.PurchasePricePiece,
		item.LowStockThreshold, item.LowStockNotified,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert inventory item", err)
	}
	return nil
}

// GetByID obtiene un artículo sin bloquearlo.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get inventory item",
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// List devuelve todos los artículos ordenados por nombre.
func (r *InventoryItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.list(ctx, "list inventory items",
		`SELECT `+inventoryItemColumns+` FROM inventory_items ORDER BY name, id`)
}

// GetForUpdate obtiene el artículo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	// Un id que no es UUID no puede existir; evita el error de cast que abortaría la tx.
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "get inventory item for update",
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// ListForReplenish bloquea, en orden de id, los artículos con pocas piezas y al menos un paquete.
func (r *InventoryItemRepo) ListForReplenish(ctx context.Context, lowPieces int) ([]*entity.InventoryItem, error) {
	return r.list(ctx, "list items for replenish", `
		SELECT `+inventoryItemColumns+`
		FROM inventory_items
		WHERE pieces_in_stock < $1 AND packs_in_stock > 0
		ORDER BY id
		FOR UPDATE`, lowPieces)
}

// DecrementStock descuenta qty de la columna correspondiente al tipo de venta.
func (r *InventoryItemRepo) DecrementStock(ctx context.Context, id, saleType string, qty int) error {
	var query string
	switch saleType {
	case entity.SaleTypePack:
		query = `UPDATE inventory_items SET packs_in_stock = packs_in_stock - $2, updated_at = now() WHERE id = $1`
	case entity.SaleTypePiece:
		query = `UPDATE inventory_items SET pieces_in_stock = pieces_in_stock - $2, updated_at = now() WHERE id = $1`
	default:
		return domain.ErrInvalidInput
	}
	cmd, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return wrapErr("decrement stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// ApplyRestock arma el UPDATE solo con columnas fijas según los campos presentes en el patch.
func (r *InventoryItemRepo) ApplyRestock(ctx context.Context, id string, patch entity.RestockPatch) (*entity.InventoryItem, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsProvided
	}
	sets := make([]string, 0, 5)
	args := []any{id}
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}
	if patch.PacksAdded != nil {
		add("packs_in_stock = packs_in_stock + $%d", *patch.PacksAdded)
	}
	if patch.PiecesAdded != nil {
		add("pieces_in_stock = pieces_in_stock + $%d", *patch.PiecesAdded)
	}
	if patch.PurchasePricePack != nil {
		add("purchase_price_pack = $%d", *patch.PurchasePricePack)
	}
	if patch.SellingPricePack != nil {
		add("selling_price_pack = $%d", *patch.SellingPricePack)
	}
	sets = append(sets, "updated_at = now()")

	query := `UPDATE inventory_items SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + inventoryItemColumns
	return r.getOne(ctx, "apply restock", query, args...)
}

// OpenPacks convierte paquetes en piezas en una sola sentencia.
func (r *InventoryItemRepo) OpenPacks(ctx context.Context, id string, packs, pieces int) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "open packs", `
		UPDATE inventory_items
		SET packs_in_stock = packs_in_stock - $2,
			pieces_in_stock = pieces_in_stock + $3,
			updated_at = now()
		WHERE id = $1
		RETURNING `+inventoryItemColumns, id, packs, pieces)
}

// ListWithThreshold artículos con umbral configurado; onlyPending excluye los ya notificados.
func (r *InventoryItemRepo) ListWithThreshold(ctx context.Context, onlyPending bool) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE low_stock_threshold IS NOT NULL`
	if onlyPending {
		query += ` AND low_stock_notified = FALSE`
	}
	query += ` ORDER BY name, id`
	return r.list(ctx, "list items with threshold", query)
}

// MarkLowStockNotified marca los artículos como ya alertados.
func (r *InventoryItemRepo) MarkLowStockNotified(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET low_stock_notified = TRUE, updated_at = now() WHERE id = ANY($1::text[]::uuid[])`,
		ids)
	if err != nil {
		return wrapErr("mark low stock notified", err)
	}
	return nil
}

// ResetLowStockNotified limpia el flag; false si el artículo no existe.
func (r *InventoryItemRepo) ResetLowStockNotified(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET low_stock_notified = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("reset low stock notified", err)
	}
	return cmd.RowsAffected() > 0, nil
}
