package repository

import (
	"context"

	"github.com/jhoicas/packstock-api/internal/domain/entity"
)

// SaleRepository libro de ventas: solo inserción (append-only).
type SaleRepository interface {
	// Create inserta la venta; SaleDate queda con la hora de la base.
	Create(ctx context.Context, sale *entity.Sale) error
	ListByInventory(ctx context.Context, inventoryID string) ([]*entity.Sale, error)
}
