package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest body para POST /api/inventory/restock. Los campos omitidos no se modifican.
type RestockRequest struct {
	InventoryID       string           `json:"inventory_id" validate:"required"`
	PacksAdded        *int             `json:"packs_added,omitempty" validate:"omitempty,min=0"`
	PiecesAdded       *int             `json:"pieces_added,omitempty" validate:"omitempty,min=0"`
	PurchasePricePack *decimal.Decimal `json:"purchase_price_pack,omitempty"`
	SellingPricePack  *decimal.Decimal `json:"selling_price_pack,omitempty"`
}

// InventoryItemResponse artículo tal como está almacenado.
type InventoryItemResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	PackSize           int              `json:"pack_size"`
	PacksInStock       int              `json:"packs_in_stock"`
	PiecesInStock      int              `json:"pieces_in_stock"`
	SellingPricePack   *decimal.Decimal `json:"selling_price_pack"`
	PurchasePricePack  *decimal.Decimal `json:"purchase_price_pack"`
	SellingPricePiece  *decimal.Decimal `json:"selling_price_piece"`
	PurchasePricePiece *decimal.Decimal `json:"purchase_price_piece"`
	LowStockThreshold  *decimal.Decimal `json:"low_stock_threshold"`
	LowStockNotified   bool             `json:"low_stock_notified"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// InventoryOverviewDTO artículo con campos derivados del stock actual y precios resueltos.
type InventoryOverviewDTO struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	PackSize           int              `json:"pack_size"`
	PacksInStock       int              `json:"packs_in_stock"`
	PiecesInStock      int              `json:"pieces_in_stock"`
	SellingPricePack   *decimal.Decimal `json:"selling_price_pack"`
	PurchasePricePack  *decimal.Decimal `json:"purchase_price_pack"`
	SellingPricePiece  decimal.Decimal  `json:"selling_price_piece"`  // resuelto (0 si no hay precio)
	PurchasePricePiece decimal.Decimal  `json:"purchase_price_piece"` // resuelto (0 si no hay precio)
	TotalPieces        int              `json:"total_pieces"`         // packs * pack_size + pieces
	StockValue         decimal.Decimal  `json:"stock_value"`          // total_pieces * precio venta unidad
	StockCost          decimal.Decimal  `json:"stock_cost"`           // total_pieces * precio compra unidad
	PotentialProfit    decimal.Decimal  `json:"potential_profit"`     // stock_value - stock_cost
}

// ReplenishResultDTO detalle de un artículo repuesto por la reposición automática.
type ReplenishResultDTO struct {
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_name"`
	PacksUsed      int    `json:"packs_used"`
	PiecesAdded    int    `json:"pieces_added"`
	NewPacksStock  int    `json:"new_packs_stock"`
	NewPiecesStock int    `json:"new_pieces_stock"`
}

// LowStockItemDTO artículo por debajo de su umbral.
type LowStockItemDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	PackSize          int             `json:"pack_size"`
	PacksInStock      int             `json:"packs_in_stock"`
	PiecesInStock     int             `json:"pieces_in_stock"`
	TotalStock        decimal.Decimal `json:"total_stock"` // en paquetes
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	LowStockNotified  bool            `json:"low_stock_notified"`
}
