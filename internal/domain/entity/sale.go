package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta válidos.
const (
	SaleTypePack  = "pack"
	SaleTypePiece = "piece"
)

// IsValidSaleType indica si t es pack o piece.
func IsValidSaleType(t string) bool {
	return t == SaleTypePack || t == SaleTypePiece
}

// Sale es un registro inmutable del libro de ventas. Los precios unitarios se congelan
// en el momento de la venta y no se recalculan.
type Sale struct {
	ID            string
	InventoryID   string
	SaleType      string // pack | piece
	Quantity      int
	SellingPrice  decimal.Decimal // precio unitario de venta
	PurchasePrice decimal.Decimal // precio unitario de compra
	Profit        decimal.Decimal // (SellingPrice - PurchasePrice) * Quantity
	SaleDate      time.Time
}
