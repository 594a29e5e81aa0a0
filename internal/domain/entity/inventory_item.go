package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un producto empacado que se vende por paquete o por unidad.
// Los precios por unidad son opcionales: si faltan se derivan del precio por paquete / PackSize.
type InventoryItem struct {
	ID                 string
	Name               string
	PackSize           int // unidades por paquete (> 0)
	PacksInStock       int
	PiecesInStock      int
	SellingPricePack   *decimal.Decimal
	PurchasePricePack  *decimal.Decimal
	SellingPricePiece  *decimal.Decimal
	PurchasePricePiece *decimal.Decimal
	LowStockThreshold  *decimal.Decimal // expresado en paquetes
	LowStockNotified   bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TotalPieces devuelve el stock completo expresado en unidades sueltas.
func (i *InventoryItem) TotalPieces() int {
	return i.PacksInStock*i.PackSize + i.PiecesInStock
}

// TotalStockInPacks devuelve packs + pieces/packSize (fraccionario).
func (i *InventoryItem) TotalStockInPacks() decimal.Decimal {
	packs := decimal.NewFromInt(int64(i.PacksInStock))
	if i.PackSize <= 0 {
		return packs
	}
	pieces := decimal.NewFromInt(int64(i.PiecesInStock)).Div(decimal.NewFromInt(int64(i.PackSize)))
	return packs.Add(pieces)
}

// IsBelowThreshold indica si el stock total está por debajo del umbral configurado.
// Sin umbral nunca está bajo.
func (i *InventoryItem) IsBelowThreshold() bool {
	if i.LowStockThreshold == nil {
		return false
	}
	return i.TotalStockInPacks().LessThan(*i.LowStockThreshold)
}

// RestockPatch actualización parcial tipada para el reabastecimiento manual.
// Packs/Pieces son deltas aditivos; los precios sobrescriben el valor actual.
type RestockPatch struct {
	PacksAdded        *int
	PiecesAdded       *int
	PurchasePricePack *decimal.Decimal
	SellingPricePack  *decimal.Decimal
}

// IsEmpty indica que el patch no trae ningún campo.
func (p RestockPatch) IsEmpty() bool {
	return p.PacksAdded == nil && p.PiecesAdded == nil &&
		p.PurchasePricePack == nil && p.SellingPricePack == nil
}
