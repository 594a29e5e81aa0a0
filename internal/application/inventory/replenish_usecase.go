package inventory

import (
	"context"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/pricing"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

// ReplenishUseCase abre paquetes para reponer unidades sueltas en los artículos con pocas piezas.
// Toda la pasada es una sola transacción: o se reponen todos los artículos seleccionados o ninguno.
type ReplenishUseCase struct {
	txRunner TxRunner
}

// NewReplenishUseCase construye el caso de uso de reposición automática.
func NewReplenishUseCase(txRunner TxRunner) *ReplenishUseCase {
	return &ReplenishUseCase{txRunner: txRunner}
}

// Run bloquea los artículos con piezas < LowPieceThreshold y paquetes > 0, abre
// max(1, paquetes/2) paquetes de cada uno y devuelve el detalle de lo repuesto.
func (uc *ReplenishUseCase) Run(ctx context.Context) ([]dto.ReplenishResultDTO, error) {
	var results []dto.ReplenishResultDTO
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.SaleRepository,
	) error {
		items, err := itemRepo.ListForReplenish(ctx, pricing.LowPieceThreshold)
		if err != nil {
			return err
		}
		results = make([]dto.ReplenishResultDTO, 0, len(items))
		for _, item := range items {
			packsToOpen := pricing.PacksToOpen(item.PacksInStock)
			if packsToOpen == 0 {
				continue
			}
			piecesToAdd := packsToOpen * item.PackSize

			updated, err := itemRepo.OpenPacks(ctx, item.ID, packsToOpen, piecesToAdd)
			if err != nil {
				return err
			}
			if updated == nil {
				return domain.ErrItemNotFound
			}
			results = append(results, dto.ReplenishResultDTO{
				ItemID:         item.ID,
				ItemName:       updated.Name,
				PacksUsed:      packsToOpen,
				PiecesAdded:    piecesToAdd,
				NewPacksStock:  updated.PacksInStock,
				NewPiecesStock: updated.PiecesInStock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
