// Package pricing contiene las reglas puras de precio y de apertura de paquetes (servicios de dominio).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/packstock-api/internal/domain"
)

// PricingInput precios configurados de un artículo. Cualquiera puede ser nil.
type PricingInput struct {
	PackSize           int
	SellingPricePack   *decimal.Decimal
	SellingPricePiece  *decimal.Decimal
	PurchasePricePack  *decimal.Decimal
	PurchasePricePiece *decimal.Decimal
}

// PiecePricing precios por unidad ya resueltos.
type PiecePricing struct {
	SellingPricePiece  decimal.Decimal
	PurchasePricePiece decimal.Decimal
}

// ResolvePiecePricing devuelve los precios por unidad. Usa el precio por unidad si existe;
// si no, PrecioPaquete / PackSize. Falla con ErrPricingUnresolved si alguno queda vacío o en cero.
// Debe llamarse antes de cualquier venta por unidad.
func ResolvePiecePricing(in PricingInput) (PiecePricing, error) {
	sell := resolvePiece(in.SellingPricePiece, in.SellingPricePack, in.PackSize)
	purchase := resolvePiece(in.PurchasePricePiece, in.PurchasePricePack, in.PackSize)
	if sell == nil || purchase == nil || sell.IsZero() || purchase.IsZero() {
		return PiecePricing{}, domain.ErrPricingUnresolved
	}
	return PiecePricing{SellingPricePiece: *sell, PurchasePricePiece: *purchase}, nil
}

// ResolveForDisplay igual que ResolvePiecePricing pero sin error: lo no resoluble vale 0.
// Lo usa el resumen de inventario para valorizar stock.
func ResolveForDisplay(in PricingInput) PiecePricing {
	out := PiecePricing{SellingPricePiece: decimal.Zero, PurchasePricePiece: decimal.Zero}
	if p := resolvePiece(in.SellingPricePiece, in.SellingPricePack, in.PackSize); p != nil {
		out.SellingPricePiece = *p
	}
	if p := resolvePiece(in.PurchasePricePiece, in.PurchasePricePack, in.PackSize); p != nil {
		out.PurchasePricePiece = *p
	}
	return out
}

func resolvePiece(piece, pack *decimal.Decimal, packSize int) *decimal.Decimal {
	if piece != nil {
		return piece
	}
	if pack == nil || pack.IsZero() || packSize <= 0 {
		return nil
	}
	v := pack.Div(decimal.NewFromInt(int64(packSize)))
	return &v
}
