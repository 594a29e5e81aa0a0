package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/pricing"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

// SaleUseCase procesa ventas de forma transaccional: bloquea la fila del artículo
// (SELECT FOR UPDATE), valida stock y precios, registra la venta y descuenta stock.
type SaleUseCase struct {
	txRunner TxRunner
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner}
}

// SaleInput entrada de una venta.
type SaleInput struct {
	InventoryID string
	SaleType    string // pack | piece
	Quantity    int
}

// SaleResult resultado de una venta confirmada.
type SaleResult struct {
	Profit decimal.Decimal
	Sale   *entity.Sale
}

// ProcessSale aplica una venta. Cualquier error revierte la transacción completa:
// ni el libro de ventas ni el stock cambian.
func (uc *SaleUseCase) ProcessSale(ctx context.Context, input SaleInput) (*SaleResult, error) {
	if input.InventoryID == "" || !entity.IsValidSaleType(input.SaleType) || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *SaleResult
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Bloquea la fila hasta el Commit/Rollback: ventas concurrentes del mismo artículo se serializan
		item, err := itemRepo.GetForUpdate(ctx, input.InventoryID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		sellingPrice, purchasePrice, err := unitPrices(item, input)
		if err != nil {
			return err
		}

		qty := decimal.NewFromInt(int64(input.Quantity))
		profit := sellingPrice.Sub(purchasePrice).Mul(qty)

		sale := &entity.Sale{
			ID:            uuid.New().String(),
			InventoryID:   item.ID,
			SaleType:      input.SaleType,
			Quantity:      input.Quantity,
			SellingPrice:  sellingPrice,
			PurchasePrice: purchasePrice,
			Profit:        profit,
		}
		// SaleDate la asigna la base (now()): el mismo reloj con el que se agrupa la ganancia del día
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if err := itemRepo.DecrementStock(ctx, item.ID, input.SaleType, input.Quantity); err != nil {
			return err
		}
		result = &SaleResult{Profit: profit, Sale: sale}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// unitPrices valida stock de la granularidad vendida y devuelve los precios unitarios
// sin redondear; la venta se guarda con esa misma precisión.
func unitPrices(item *entity.InventoryItem, input SaleInput) (sell, purchase decimal.Decimal, err error) {
	switch input.SaleType {
	case entity.SaleTypePack:
		if item.PacksInStock < input.Quantity {
			return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
		}
		if !isSet(item.SellingPricePack) || !isSet(item.PurchasePricePack) {
			return decimal.Zero, decimal.Zero, domain.ErrPricingMissing
		}
		return *item.SellingPricePack, *item.PurchasePricePack, nil
	default:
		if item.PiecesInStock < input.Quantity {
			return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
		}
		p, err := pricing.ResolvePiecePricing(pricing.PricingInput{
			PackSize:           item.PackSize,
			SellingPricePack:   item.SellingPricePack,
			SellingPricePiece:  item.SellingPricePiece,
			PurchasePricePack:  item.PurchasePricePack,
			PurchasePricePiece: item.PurchasePricePiece,
		})
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return p.SellingPricePiece, p.PurchasePricePiece, nil
	}
}

func isSet(d *decimal.Decimal) bool {
	return d != nil && !d.IsZero()
}
