package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/domain/entity"
)

// ProfitRepository consultas de solo lectura sobre el libro de ventas.
type ProfitRepository interface {
	// TodayProfit suma la ganancia de las ventas del día actual (zona horaria de la sesión).
	TodayProfit(ctx context.Context) (decimal.Decimal, error)
	// ProfitByProduct agrupa por producto y día de venta (más reciente primero).
	ProfitByProduct(ctx context.Context, limit, offset int) ([]entity.ProductProfit, error)
}
