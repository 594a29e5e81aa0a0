package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

const profitDateLayout = "2006-01-02"

// ReportMaxRows tope de filas del reporte PDF.
const ReportMaxRows = 500

// ProfitReportGenerator genera el PDF del reporte de ganancias.
type ProfitReportGenerator interface {
	GenerateProfitReport(ctx context.Context, report dto.ProfitReport) ([]byte, error)
}

// ProfitUseCase lecturas de ganancia sobre el libro de ventas.
type ProfitUseCase struct {
	profitRepo repository.ProfitRepository
	reportGen  ProfitReportGenerator
	now        func() time.Time
}

// NewProfitUseCase construye el caso de uso. reportGen puede ser nil si no se expone el PDF.
func NewProfitUseCase(profitRepo repository.ProfitRepository, reportGen ProfitReportGenerator) *ProfitUseCase {
	return &ProfitUseCase{profitRepo: profitRepo, reportGen: reportGen, now: time.Now}
}

// Today devuelve la ganancia acumulada del día (0 si no hubo ventas).
func (uc *ProfitUseCase) Today(ctx context.Context) (*dto.TodayProfitDTO, error) {
	total, err := uc.profitRepo.TodayProfit(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TodayProfitDTO{TotalProfit: total}, nil
}

// ByProduct devuelve la ganancia agrupada por producto y día.
func (uc *ProfitUseCase) ByProduct(ctx context.Context, page dto.PageRequest) (*dto.ProfitByProductResponse, error) {
	page.DefaultPage()
	rows, err := uc.profitRepo.ProfitByProduct(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductProfitDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ProductProfitDTO{
			Name:           r.Name,
			SaleDate:       r.SaleDate.Format(profitDateLayout),
			TotalProfit:    r.TotalProfit,
			TotalUnitsSold: r.TotalUnitsSold,
		})
	}
	return &dto.ProfitByProductResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Report genera el PDF con la ganancia de hoy y las últimas ReportMaxRows filas por producto y día.
func (uc *ProfitUseCase) Report(ctx context.Context) ([]byte, error) {
	if uc.reportGen == nil {
		return nil, errors.New("generador de reportes no configurado")
	}
	today, err := uc.Today(ctx)
	if err != nil {
		return nil, err
	}
	page, err := uc.ByProduct(ctx, dto.PageRequest{Limit: ReportMaxRows})
	if err != nil {
		return nil, err
	}
	report := dto.ProfitReport{
		Title:       "Reporte de ganancias por producto",
		GeneratedAt: uc.now(),
		TodayProfit: today.TotalProfit,
		Items:       page.Items,
		TotalProfit: decimal.Zero,
	}
	for _, it := range page.Items {
		report.TotalProfit = report.TotalProfit.Add(it.TotalProfit)
		report.TotalUnits += it.TotalUnitsSold
	}
	return uc.reportGen.GenerateProfitReport(ctx, report)
}
