package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/packstock-api/internal/domain"
)

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestResolvePiecePricing(t *testing.T) {
	tests := []struct {
		name         string
		in           PricingInput
		wantSell     string
		wantPurchase string
		wantErr      error
	}{
		{
			name:         "derivado del paquete",
			in:           PricingInput{PackSize: 12, SellingPricePack: d("6000"), PurchasePricePack: d("4800")},
			wantSell:     "500",
			wantPurchase: "400",
		},
		{
			name: "precio por unidad explícito gana",
			in: PricingInput{PackSize: 12, SellingPricePack: d("6000"), PurchasePricePack: d("4800"),
				SellingPricePiece: d("550"), PurchasePricePiece: d("410")},
			wantSell:     "550",
			wantPurchase: "410",
		},
		{
			name:         "mezcla: venta explícita, compra derivada",
			in:           PricingInput{PackSize: 4, SellingPricePiece: d("300"), PurchasePricePack: d("1000")},
			wantSell:     "300",
			wantPurchase: "250",
		},
		{
			name:    "sin precio de compra",
			in:      PricingInput{PackSize: 12, SellingPricePack: d("6000")},
			wantErr: domain.ErrPricingUnresolved,
		},
		{
			name:    "precio por unidad en cero no cae al de paquete",
			in:      PricingInput{PackSize: 12, SellingPricePack: d("6000"), PurchasePricePack: d("4800"), SellingPricePiece: d("0")},
			wantErr: domain.ErrPricingUnresolved,
		},
		{
			name:    "paquete en cero cuenta como no configurado",
			in:      PricingInput{PackSize: 12, SellingPricePack: d("0"), PurchasePricePack: d("4800")},
			wantErr: domain.ErrPricingUnresolved,
		},
		{
			name:    "pack size inválido",
			in:      PricingInput{PackSize: 0, SellingPricePack: d("6000"), PurchasePricePack: d("4800")},
			wantErr: domain.ErrPricingUnresolved,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePiecePricing(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.SellingPricePiece.Equal(decimal.RequireFromString(tt.wantSell)), got.SellingPricePiece.String())
			assert.True(t, got.PurchasePricePiece.Equal(decimal.RequireFromString(tt.wantPurchase)), got.PurchasePricePiece.String())
		})
	}
}

func TestResolvePiecePricing_NonIntegerDivision(t *testing.T) {
	got, err := ResolvePiecePricing(PricingInput{PackSize: 3, SellingPricePack: d("1000"), PurchasePricePack: d("900")})
	require.NoError(t, err)
	// 1000/3 con la precisión por defecto de decimal (16 dígitos)
	assert.Equal(t, "333.3333333333333333", got.SellingPricePiece.String())
	assert.True(t, got.PurchasePricePiece.Equal(decimal.NewFromInt(300)))
}

func TestResolveForDisplay(t *testing.T) {
	got := ResolveForDisplay(PricingInput{PackSize: 6, SellingPricePack: d("600")})
	assert.True(t, got.SellingPricePiece.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.PurchasePricePiece.IsZero())
}
