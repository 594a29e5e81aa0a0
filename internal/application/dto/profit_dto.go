package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TodayProfitDTO ganancia total del día.
type TodayProfitDTO struct {
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// ProductProfitDTO ganancia de un producto en un día.
type ProductProfitDTO struct {
	Name           string          `json:"name"`
	SaleDate       string          `json:"sale_date"` // YYYY-MM-DD
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalUnitsSold int64           `json:"total_units_sold"`
}

// ProfitByProductResponse listado paginado de ganancias por producto y día.
type ProfitByProductResponse struct {
	Items []ProductProfitDTO `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ProfitReport datos del reporte PDF de ganancias.
type ProfitReport struct {
	Title       string
	GeneratedAt time.Time
	TodayProfit decimal.Decimal
	Items       []ProductProfitDTO
	TotalProfit decimal.Decimal // suma de Items
	TotalUnits  int64
}
