package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest body para POST /api/sales.
type SaleRequest struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	SaleType    string `json:"sale_type" validate:"required,oneof=pack piece"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// SaleResponse registro de venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	InventoryID   string          `json:"inventory_id"`
	SaleType      string          `json:"sale_type"`
	Quantity      int             `json:"quantity"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Profit        decimal.Decimal `json:"profit"`
	SaleDate      time.Time       `json:"sale_date"`
}

// ProcessSaleResponse respuesta de una venta exitosa.
type ProcessSaleResponse struct {
	Success bool            `json:"success"`
	Profit  decimal.Decimal `json:"profit"`
	Message string          `json:"message"`
	Sale    SaleResponse    `json:"sale"`
}
