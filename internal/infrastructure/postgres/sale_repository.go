package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas (solo INSERT y SELECT).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta. sale_date sale de now() en la base y se copia a sale.SaleDate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, inventory_id, sale_type, quantity, selling_price, purchase_price, profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING sale_date`
	err := r.q.QueryRow(ctx, query,
		sale.ID, sale.InventoryID, sale.SaleType, sale.Quantity,
		sale.SellingPrice, sale.PurchasePrice, sale.Profit,
	).Scan(&sale.SaleDate)
	if err != nil {
		return wrapErr("insert sale", err)
	}
	return nil
}

// ListByInventory ventas de un artículo, más reciente primero.
func (r *SaleRepo) ListByInventory(ctx context.Context, inventoryID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_id, sale_type, quantity, selling_price, purchase_price, profit, sale_date
		FROM sales WHERE inventory_id = $1 ORDER BY sale_date DESC, id`, inventoryID)
	if err != nil {
		return nil, wrapErr("list sales", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.InventoryID, &s.SaleType, &s.Quantity,
			&s.SellingPrice, &s.PurchasePrice, &s.Profit, &s.SaleDate); err != nil {
			return nil, wrapErr("scan sale", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list sales", err)
	}
	return out, nil
}
