package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

// RestockUseCase aplica correcciones manuales de stock y precios en una sola transacción.
// Nunca toca el libro de ventas.
type RestockUseCase struct {
	txRunner TxRunner
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(txRunner TxRunner) *RestockUseCase {
	return &RestockUseCase{txRunner: txRunner}
}

// RestockInput entrada del reabastecimiento; los campos nil no se tocan.
type RestockInput struct {
	InventoryID       string
	PacksAdded        *int
	PiecesAdded       *int
	PurchasePricePack *decimal.Decimal
	SellingPricePack  *decimal.Decimal
}

// Restock valida el patch antes de abrir la transacción y devuelve el artículo actualizado.
func (uc *RestockUseCase) Restock(ctx context.Context, input RestockInput) (*entity.InventoryItem, error) {
	if input.InventoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	patch := entity.RestockPatch{
		PacksAdded:        input.PacksAdded,
		PiecesAdded:       input.PiecesAdded,
		PurchasePricePack: input.PurchasePricePack,
		SellingPricePack:  input.SellingPricePack,
	}
	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsProvided
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.SaleRepository,
	) error {
		current, err := itemRepo.GetForUpdate(ctx, input.InventoryID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrItemNotFound
		}
		updated, err = itemRepo.ApplyRestock(ctx, input.InventoryID, patch)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func validatePatch(p entity.RestockPatch) error {
	if p.PacksAdded != nil && *p.PacksAdded < 0 {
		return domain.ErrInvalidInput
	}
	if p.PiecesAdded != nil && *p.PiecesAdded < 0 {
		return domain.ErrInvalidInput
	}
	if p.PurchasePricePack != nil && p.PurchasePricePack.IsNegative() {
		return domain.ErrInvalidInput
	}
	if p.SellingPricePack != nil && p.SellingPricePack.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}
