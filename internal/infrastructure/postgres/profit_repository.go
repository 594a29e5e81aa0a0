package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

var _ repository.ProfitRepository = (*ProfitRepo)(nil)

// ProfitRepo consultas de ganancia sobre sales. "Hoy" y el día de venta se calculan
// en la zona horaria de la sesión (ver NewPool).
type ProfitRepo struct {
	q Querier
}

// NewProfitRepository construye el adaptador.
func NewProfitRepository(q Querier) *ProfitRepo {
	return &ProfitRepo{q: q}
}

// TodayProfit suma la ganancia de las ventas de hoy; 0 si no hubo.
func (r *ProfitRepo) TodayProfit(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(profit), 0)
		FROM sales
		WHERE sale_date >= CURRENT_DATE AND sale_date < CURRENT_DATE + 1`).Scan(&total)
	if err != nil {
		return decimal.Zero, wrapErr("today profit", err)
	}
	return total, nil
}

// ProfitByProduct agrupa por artículo y día; ordena por día desc y ganancia desc.
func (r *ProfitRepo) ProfitByProduct(ctx context.Context, limit, offset int) ([]entity.ProductProfit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.name, s.sale_date::date AS day, SUM(s.profit) AS total_profit, SUM(s.quantity) AS units
		FROM sales s
		JOIN inventory_items i ON i.id = s.inventory_id
		GROUP BY i.id, i.name, day
		ORDER BY day DESC, total_profit DESC, i.name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("profit by product", err)
	}
	defer rows.Close()
	out := make([]entity.ProductProfit, 0)
	for rows.Next() {
		var p entity.ProductProfit
		if err := rows.Scan(&p.Name, &p.SaleDate, &p.TotalProfit, &p.TotalUnitsSold); err != nil {
			return nil, wrapErr("scan profit", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("profit by product", err)
	}
	return out, nil
}
