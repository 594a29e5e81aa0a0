package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/pricing"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

// InventoryUseCase lecturas del inventario con campos derivados (total de unidades, valor,
// costo y ganancia potencial). No guarda nada en memoria: cada llamada lee el estado actual.
type InventoryUseCase struct {
	repo repository.InventoryItemRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryItemRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Overview devuelve todos los artículos ordenados por nombre con sus campos derivados.
func (uc *InventoryUseCase) Overview(ctx context.Context) ([]dto.InventoryOverviewDTO, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryOverviewDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ToOverview(item))
	}
	return out, nil
}

// GetByID devuelve un artículo con sus campos derivados.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryOverviewDTO, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	o := ToOverview(item)
	return &o, nil
}

// ToOverview calcula los campos derivados de un artículo.
func ToOverview(item *entity.InventoryItem) dto.InventoryOverviewDTO {
	p := pricing.ResolveForDisplay(pricing.PricingInput{
		PackSize:           item.PackSize,
		SellingPricePack:   item.SellingPricePack,
		SellingPricePiece:  item.SellingPricePiece,
		PurchasePricePack:  item.PurchasePricePack,
		PurchasePricePiece: item.PurchasePricePiece,
	})
	total := item.TotalPieces()
	totalDec := decimal.NewFromInt(int64(total))
	value := totalDec.Mul(p.SellingPricePiece)
	cost := totalDec.Mul(p.PurchasePricePiece)
	return dto.InventoryOverviewDTO{
		ID:                 item.ID,
		Name:               item.Name,
		PackSize:           item.PackSize,
		PacksInStock:       item.PacksInStock,
		PiecesInStock:      item.PiecesInStock,
		SellingPricePack:   item.SellingPricePack,
		PurchasePricePack:  item.PurchasePricePack,
		SellingPricePiece:  p.SellingPricePiece,
		PurchasePricePiece: p.PurchasePricePiece,
		TotalPieces:        total,
		StockValue:         value,
		StockCost:          cost,
		PotentialProfit:    value.Sub(cost),
	}
}

// ToItemResponse mapea la entidad al DTO de salida sin campos derivados.
func ToItemResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	if item == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:                 item.ID,
		Name:               item.Name,
		PackSize:           item.PackSize,
		PacksInStock:       item.PacksInStock,
		PiecesInStock:      item.PiecesInStock,
		SellingPricePack:   item.SellingPricePack,
		PurchasePricePack:  item.PurchasePricePack,
		SellingPricePiece:  item.SellingPricePiece,
		PurchasePricePiece: item.PurchasePricePiece,
		LowStockThreshold:  item.LowStockThreshold,
		LowStockNotified:   item.LowStockNotified,
		UpdatedAt:          item.UpdatedAt,
	}
}

// ToSaleResponse mapea una venta al DTO de salida.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		InventoryID:   s.InventoryID,
		SaleType:      s.SaleType,
		Quantity:      s.Quantity,
		SellingPrice:  s.SellingPrice,
		PurchasePrice: s.PurchasePrice,
		Profit:        s.Profit,
		SaleDate:      s.SaleDate,
	}
}
