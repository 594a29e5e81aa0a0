package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/pkg/logger"
)

// fakeItemRepo solo implementa lo que usa el notificador; el resto no se llama.
type fakeItemRepo struct {
	mu      sync.Mutex
	items   map[string]*entity.InventoryItem
	markErr error
}

func (r *fakeItemRepo) Create(context.Context, *entity.InventoryItem) error { return nil }
func (r *fakeItemRepo) GetByID(context.Context, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) List(context.Context) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *fakeItemRepo) GetForUpdate(context.Context, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListForReplenish(context.Context, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) DecrementStock(context.Context, string, string, int) error { return nil }
func (r *fakeItemRepo) ApplyRestock(context.Context, string, entity.RestockPatch) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) OpenPacks(context.Context, string, int, int) (*entity.InventoryItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) ListWithThreshold(_ context.Context, onlyPending bool) ([]*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.LowStockThreshold == nil || (onlyPending && it.LowStockNotified) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) MarkLowStockNotified(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markErr != nil {
		return r.markErr
	}
	for _, id := range ids {
		r.items[id].LowStockNotified = true
	}
	return nil
}

func (r *fakeItemRepo) ResetLowStockNotified(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return false, nil
	}
	it.LowStockNotified = false
	return true, nil
}

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []dto.LowStockAlert
	err    error
}

func (a *recordingAlerter) Name() string { return "test" }

func (a *recordingAlerter) SendLowStockAlert(_ context.Context, alert dto.LowStockAlert) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.alerts = append(a.alerts, alert)
	return nil
}

func (a *recordingAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.alerts)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*entity.InventoryItem{
		// 1 + 4/12 = 1.33 < 2 -> bajo
		"low": {ID: "low", Name: "Malta", PackSize: 12, PacksInStock: 1, PiecesInStock: 4, LowStockThreshold: dec("2")},
		// 3 >= 2 -> ok
		"ok": {ID: "ok", Name: "Agua", PackSize: 6, PacksInStock: 3, LowStockThreshold: dec("2")},
		// sin umbral -> nunca alerta
		"none": {ID: "none", Name: "Jugo", PackSize: 6},
		// exactamente en el umbral no es bajo
		"edge": {ID: "edge", Name: "Soda", PackSize: 4, PacksInStock: 1, PiecesInStock: 2, LowStockThreshold: dec("1.5")},
	}}
}

func TestCheckAndNotify_AlertsOnceAndMarks(t *testing.T) {
	repo := newRepo()
	alerter := &recordingAlerter{}
	n := NewLowStockNotifier(repo, logger.Nop(), alerter)

	res, err := n.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.True(t, res.AlertSent)
	require.Len(t, res.LowStock, 1)
	assert.Equal(t, "low", res.LowStock[0].ID)
	assert.True(t, res.LowStock[0].TotalStock.LessThan(decimal.NewFromInt(2)))
	assert.True(t, repo.items["low"].LowStockNotified)
	assert.False(t, repo.items["ok"].LowStockNotified)

	// Segundo chequeo sin cambios de stock: no re-alerta.
	res, err = n.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.LowStock)
	assert.False(t, res.AlertSent)
	assert.Equal(t, 1, alerter.count())
}

func TestCheckAndNotify_SendFailureLeavesFlagsUnset(t *testing.T) {
	repo := newRepo()
	alerter := &recordingAlerter{err: errors.New("smtp caído")}
	n := NewLowStockNotifier(repo, logger.Nop(), alerter)

	_, err := n.CheckAndNotify(context.Background())
	require.Error(t, err)
	assert.False(t, repo.items["low"].LowStockNotified)

	// El canal se recupera: el próximo chequeo envía.
	alerter.err = nil
	res, err := n.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.True(t, res.AlertSent)
	assert.True(t, repo.items["low"].LowStockNotified)
}

func TestCheckAndNotify_MarkFailureMayRepeat(t *testing.T) {
	repo := newRepo()
	repo.markErr = errors.New("db caída")
	alerter := &recordingAlerter{}
	n := NewLowStockNotifier(repo, logger.Nop(), alerter)

	_, err := n.CheckAndNotify(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, alerter.count())

	repo.markErr = nil
	_, err = n.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, alerter.count())
}

func TestCheckAndNotify_NoAlertersDoesNotMark(t *testing.T) {
	repo := newRepo()
	n := NewLowStockNotifier(repo, logger.Nop())

	res, err := n.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.LowStock, 1)
	assert.False(t, res.AlertSent)
	assert.False(t, repo.items["low"].LowStockNotified)
}

func TestListLowStock_IncludesNotified(t *testing.T) {
	repo := newRepo()
	repo.items["low"].LowStockNotified = true
	n := NewLowStockNotifier(repo, logger.Nop())

	items, err := n.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].LowStockNotified)
}

func TestResetNotification(t *testing.T) {
	repo := newRepo()
	repo.items["low"].LowStockNotified = true
	alerter := &recordingAlerter{}
	n := NewLowStockNotifier(repo, logger.Nop(), alerter)

	require.NoError(t, n.ResetNotification(context.Background(), "low"))
	assert.False(t, repo.items["low"].LowStockNotified)
	assert.ErrorIs(t, n.ResetNotification(context.Background(), "missing"), domain.ErrItemNotFound)

	// Tras el reset vuelve a alertar.
	res, err := n.CheckAndNotify(context.Background())
	require.NoError(t, err)
	assert.True(t, res.AlertSent)
}
