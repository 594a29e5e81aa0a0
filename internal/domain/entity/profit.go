package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductProfit ganancia agregada de un producto en un día de venta.
type ProductProfit struct {
	Name           string
	SaleDate       time.Time
	TotalProfit    decimal.Decimal
	TotalUnitsSold int64
}
