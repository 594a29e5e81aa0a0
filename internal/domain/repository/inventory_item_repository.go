package repository

import (
	"context"

	"github.com/jhoicas/packstock-api/internal/domain/entity"
)

// InventoryItemRepository puerto de persistencia del libro de stock (una fila por producto).
// Usable con pool o dentro de una transacción; los métodos *ForUpdate solo tienen sentido en tx.
// Los Get devuelven (nil, nil) si la fila no existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]*entity.InventoryItem, error)

	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// ListForReplenish bloquea todas las filas con piezas < lowPieces y al menos un paquete.
	ListForReplenish(ctx context.Context, lowPieces int) ([]*entity.InventoryItem, error)

	// DecrementStock resta qty de packs_in_stock (pack) o pieces_in_stock (piece).
	DecrementStock(ctx context.Context, id, saleType string, qty int) error
	// ApplyRestock aplica el patch y devuelve la fila resultante; nil si no existe.
	ApplyRestock(ctx context.Context, id string, patch entity.RestockPatch) (*entity.InventoryItem, error)
	// OpenPacks resta packs y suma pieces en una sola sentencia; devuelve la fila resultante.
	OpenPacks(ctx context.Context, id string, packs, pieces int) (*entity.InventoryItem, error)

	// ListWithThreshold artículos con umbral configurado; onlyPending filtra los ya notificados.
	ListWithThreshold(ctx context.Context, onlyPending bool) ([]*entity.InventoryItem, error)
	MarkLowStockNotified(ctx context.Context, ids []string) error
	// ResetLowStockNotified devuelve false si la fila no existe.
	ResetLowStockNotified(ctx context.Context, id string) (bool, error)
}
