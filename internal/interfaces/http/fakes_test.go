package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/application/inventory"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/packstock-api/internal/interfaces/http"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeSales struct {
	got inventory.SaleInput
	err error
}

func (f *fakeSales) ProcessSale(_ context.Context, in inventory.SaleInput) (*inventory.SaleResult, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	profit := decimal.NewFromInt(300)
	return &inventory.SaleResult{
		Profit: profit,
		Sale: &entity.Sale{
			ID: "sale-1", InventoryID: in.InventoryID, SaleType: in.SaleType, Quantity: in.Quantity,
			SellingPrice: decimal.NewFromInt(500), PurchasePrice: decimal.NewFromInt(400),
			Profit: profit, SaleDate: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		},
	}, nil
}

type fakeRestock struct {
	got inventory.RestockInput
	err error
}

func (f *fakeRestock) Restock(_ context.Context, in inventory.RestockInput) (*entity.InventoryItem, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &entity.InventoryItem{ID: in.InventoryID, Name: "Malta", PackSize: 12, PacksInStock: 15}, nil
}

type fakeInventory struct {
	items []dto.InventoryOverviewDTO
}

func (f *fakeInventory) Overview(context.Context) ([]dto.InventoryOverviewDTO, error) {
	return f.items, nil
}

func (f *fakeInventory) GetByID(_ context.Context, id string) (*dto.InventoryOverviewDTO, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

type fakeReplenish struct {
	err error
}

func (f *fakeReplenish) TriggerNow(context.Context) ([]dto.ReplenishResultDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []dto.ReplenishResultDTO{{ItemID: "a", PacksUsed: 2, PiecesAdded: 24}}, nil
}

type fakeProfit struct {
	page dto.PageRequest
	err  error
}

func (f *fakeProfit) Today(context.Context) (*dto.TodayProfitDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TodayProfitDTO{TotalProfit: decimal.RequireFromString("1250.50")}, nil
}

func (f *fakeProfit) ByProduct(_ context.Context, page dto.PageRequest) (*dto.ProfitByProductResponse, error) {
	f.page = page
	return &dto.ProfitByProductResponse{Items: []dto.ProductProfitDTO{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (f *fakeProfit) Report(context.Context) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type fakeNotifier struct {
	resetID string
}

func (f *fakeNotifier) CheckAndNotify(context.Context) (*dto.CheckStockResultDTO, error) {
	return &dto.CheckStockResultDTO{Checked: 3, LowStock: []dto.LowStockItemDTO{{ID: "a"}}, AlertSent: true}, nil
}

func (f *fakeNotifier) ListLowStock(context.Context) ([]dto.LowStockItemDTO, error) {
	return []dto.LowStockItemDTO{{ID: "a"}, {ID: "b"}}, nil
}

func (f *fakeNotifier) ResetNotification(_ context.Context, id string) error {
	if id != "a" {
		return domain.ErrItemNotFound
	}
	f.resetID = id
	return nil
}

type fakeAuth struct {
	adminSet
	registerErr error
	loginErr    error
	inviteDays  int
	includeUsed bool
}

func (f *fakeAuth) Register(_ context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &dto.AuthResponse{Message: "ok", Admin: dto.AdminResponse{ID: "new", Username: in.Username}, Token: "tok"}, nil
}

func (f *fakeAuth) Login(_ context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &dto.AuthResponse{Admin: dto.AdminResponse{Username: in.Username}, Token: "tok"}, nil
}

func (f *fakeAuth) Me(_ context.Context, id string) (*dto.AdminResponse, error) {
	return &dto.AdminResponse{ID: id, Username: testUsername}, nil
}

func (f *fakeAuth) GenerateInvite(_ context.Context, _ string, days int) (*dto.InviteCodeResponse, error) {
	f.inviteDays = days
	return &dto.InviteCodeResponse{ID: "inv", Code: "0123456789abcdef0123456789abcdef"}, nil
}

func (f *fakeAuth) ListInvites(_ context.Context, includeUsed bool) ([]dto.InviteCodeResponse, error) {
	f.includeUsed = includeUsed
	return []dto.InviteCodeResponse{}, nil
}

func (f *fakeAuth) RevokeInvite(_ context.Context, id string) error {
	if id != "inv" {
		return domain.ErrNotFound
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app       *fiber.App
	sales     *fakeSales
	restock   *fakeRestock
	inventory *fakeInventory
	replenish *fakeReplenish
	profit    *fakeProfit
	notifier  *fakeNotifier
	auth      *fakeAuth
	token     string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{
		sales:     &fakeSales{},
		restock:   &fakeRestock{},
		inventory: &fakeInventory{items: []dto.InventoryOverviewDTO{{ID: "a", Name: "Malta", TotalPieces: 30}}},
		replenish: &fakeReplenish{},
		profit:    &fakeProfit{},
		notifier:  &fakeNotifier{},
		auth:      &fakeAuth{adminSet: knownAdmin()},
	}
	api.app = apphttp.NewApp(apphttp.AppConfig{Name: "packstock-test"}, logger.Nop())
	apphttp.Router(api.app, apphttp.RouterDeps{
		Sales:           api.sales,
		Restock:         api.restock,
		Inventory:       api.inventory,
		Replenish:       api.replenish,
		Profit:          api.profit,
		Notifications:   api.notifier,
		Auth:            api.auth,
		JWTSecret:       testJWTSecret,
		RateLimitMax:    3,
		RateLimitWindow: time.Minute,
	})
	api.token = bearer(t, testAdminID, testExpMin)
	return api
}

// do envía la petición autenticada; body se serializa a JSON si no es nil.
func (a *testAPI) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return a.send(t, method, path, body, a.token)
}

func (a *testAPI) send(t *testing.T, method, path string, body any, auth string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
