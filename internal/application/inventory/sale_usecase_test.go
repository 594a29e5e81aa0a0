package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
)

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func malta() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: "malta", Name: "Malta", PackSize: 12, PacksInStock: 10, PiecesInStock: 8,
		SellingPricePack: dp("6000"), PurchasePricePack: dp("4800"),
	}
}

func TestProcessSale_Pack(t *testing.T) {
	l := newMemLedger(malta())
	uc := NewSaleUseCase(l)

	res, err := uc.ProcessSale(context.Background(), SaleInput{InventoryID: "malta", SaleType: entity.SaleTypePack, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, res.Profit.Equal(decimal.NewFromInt(3600)), res.Profit.String())
	assert.True(t, res.Sale.SellingPrice.Equal(decimal.NewFromInt(6000)))
	assert.True(t, res.Sale.PurchasePrice.Equal(decimal.NewFromInt(4800)))
	assert.False(t, res.Sale.SaleDate.IsZero())

	it := l.item("malta")
	assert.Equal(t, 7, it.PacksInStock)
	assert.Equal(t, 8, it.PiecesInStock, "la otra granularidad no cambia")
	assert.Equal(t, 1, l.salesCount())
}

func TestProcessSale_PieceDerivedPricing(t *testing.T) {
	l := newMemLedger(malta())
	uc := NewSaleUseCase(l)

	res, err := uc.ProcessSale(context.Background(), SaleInput{InventoryID: "malta", SaleType: entity.SaleTypePiece, Quantity: 3})
	require.NoError(t, err)
	// (6000/12 - 4800/12) * 3 = (500 - 400) * 3
	assert.True(t, res.Profit.Equal(decimal.NewFromInt(300)), res.Profit.String())
	assert.Equal(t, 5, l.item("malta").PiecesInStock)
	assert.Equal(t, 10, l.item("malta").PacksInStock)
}

func TestProcessSale_PieceNonIntegerPricesKeepSaleConsistent(t *testing.T) {
	item := &entity.InventoryItem{
		ID: "jugo", Name: "Jugo", PackSize: 3, PacksInStock: 2, PiecesInStock: 5,
		SellingPricePack: dp("100"), PurchasePricePack: dp("50"),
	}
	l := newMemLedger(item)

	res, err := NewSaleUseCase(l).ProcessSale(context.Background(), SaleInput{InventoryID: "jugo", SaleType: entity.SaleTypePiece, Quantity: 3})
	require.NoError(t, err)

	sale := res.Sale
	assert.Equal(t, "33.3333333333333333", sale.SellingPrice.String())
	assert.Equal(t, "16.6666666666666667", sale.PurchasePrice.String())
	assert.Equal(t, "49.9999999999999998", res.Profit.String())
	assert.True(t, sale.Profit.Equal(res.Profit), "la venta guarda la ganancia devuelta")
	want := sale.SellingPrice.Sub(sale.PurchasePrice).Mul(decimal.NewFromInt(int64(sale.Quantity)))
	assert.True(t, sale.Profit.Equal(want), "profit = (venta - compra) * cantidad: %s vs %s", sale.Profit, want)
	assert.False(t, sale.SaleDate.IsZero(), "la fecha la asigna el libro de ventas")
}

func TestProcessSale_NegativeProfitAllowed(t *testing.T) {
	item := malta()
	item.SellingPricePack = dp("4000")
	l := newMemLedger(item)

	res, err := NewSaleUseCase(l).ProcessSale(context.Background(), SaleInput{InventoryID: "malta", SaleType: entity.SaleTypePack, Quantity: 1})
	require.NoError(t, err)
	assert.True(t, res.Profit.Equal(decimal.NewFromInt(-800)))
}

func TestProcessSale_Failures(t *testing.T) {
	noPurchase := malta()
	noPurchase.PurchasePricePack = nil

	zeroSelling := malta()
	zeroSelling.SellingPricePack = dp("0")

	tests := []struct {
		name    string
		item    *entity.InventoryItem
		input   SaleInput
		wantErr error
	}{
		{"stock insuficiente paquetes", malta(), SaleInput{"malta", entity.SaleTypePack, 11}, domain.ErrInsufficientStock},
		{"stock insuficiente unidades", malta(), SaleInput{"malta", entity.SaleTypePiece, 9}, domain.ErrInsufficientStock},
		{"paquete sin precio de compra", noPurchase, SaleInput{"malta", entity.SaleTypePack, 1}, domain.ErrPricingMissing},
		{"paquete con precio cero", zeroSelling, SaleInput{"malta", entity.SaleTypePack, 1}, domain.ErrPricingMissing},
		{"unidad sin precio resoluble", noPurchase, SaleInput{"malta", entity.SaleTypePiece, 1}, domain.ErrPricingUnresolved},
		{"artículo inexistente", malta(), SaleInput{"otro", entity.SaleTypePack, 1}, domain.ErrItemNotFound},
		{"tipo inválido", malta(), SaleInput{"malta", "caja", 1}, domain.ErrInvalidInput},
		{"cantidad cero", malta(), SaleInput{"malta", entity.SaleTypePack, 0}, domain.ErrInvalidInput},
		{"id vacío", malta(), SaleInput{"", entity.SaleTypePack, 1}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newMemLedger(tt.item)
			before := l.item("malta")

			_, err := NewSaleUseCase(l).ProcessSale(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, l.item("malta"))
			assert.Zero(t, l.salesCount())
		})
	}
}

func TestProcessSale_DecrementFailureRollsBackSale(t *testing.T) {
	l := newMemLedger(malta())
	l.failDecrement = errors.New("conexión perdida")

	_, err := NewSaleUseCase(l).ProcessSale(context.Background(), SaleInput{InventoryID: "malta", SaleType: entity.SaleTypePack, Quantity: 1})
	require.Error(t, err)
	assert.Zero(t, l.salesCount(), "la venta no debe quedar registrada")
	assert.Equal(t, 10, l.item("malta").PacksInStock)
}

func TestProcessSale_ExactStockReachesZero(t *testing.T) {
	l := newMemLedger(malta())
	_, err := NewSaleUseCase(l).ProcessSale(context.Background(), SaleInput{InventoryID: "malta", SaleType: entity.SaleTypePiece, Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 0, l.item("malta").PiecesInStock)
}

// Ventas concurrentes del mismo artículo: nunca se vende más de lo que hay
// y cada venta confirmada descuenta exactamente su cantidad.
func TestProcessSale_ConcurrentSalesNeverOversell(t *testing.T) {
	item := malta()
	item.PacksInStock = 20
	l := newMemLedger(item)
	uc := NewSaleUseCase(l)

	const buyers = 50
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
		other        []error
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ProcessSale(context.Background(), SaleInput{InventoryID: "malta", SaleType: entity.SaleTypePack, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 20, ok)
	assert.Equal(t, buyers-20, rejected)
	assert.Equal(t, 0, l.item("malta").PacksInStock)
	assert.Equal(t, 8, l.item("malta").PiecesInStock)
	assert.Equal(t, 20, l.salesCount())
}
