package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
)

var errCheckViolation = errors.New("check constraint: stock negativo")

// memLedger libro de stock en memoria. Cada fila tiene su mutex para emular SELECT FOR UPDATE:
// se toma al bloquear la fila y se libera al terminar la transacción. Los cambios de una tx
// quedan en staging hasta el commit; un error descarta el staging (rollback).
type memLedger struct {
	mu    sync.Mutex
	items map[string]*entity.InventoryItem
	sales []*entity.Sale
	locks map[string]*sync.Mutex

	// Fallas inyectadas.
	failDecrement error
	failOpenPacks map[string]error
}

func newMemLedger(items ...*entity.InventoryItem) *memLedger {
	l := &memLedger{
		items:         map[string]*entity.InventoryItem{},
		locks:         map[string]*sync.Mutex{},
		failOpenPacks: map[string]error{},
	}
	for _, it := range items {
		cp := *it
		l.items[it.ID] = &cp
		l.locks[it.ID] = &sync.Mutex{}
	}
	return l
}

func (l *memLedger) item(id string) entity.InventoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.items[id]
}

func (l *memLedger) salesCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sales)
}

// Run implementa TxRunner.
func (l *memLedger) Run(ctx context.Context, fn func(repository.InventoryItemRepository, repository.SaleRepository) error) error {
	tx := &memTx{l: l, locked: map[string]bool{}, staged: map[string]*entity.InventoryItem{}}
	defer tx.release()
	if err := fn(tx, memSales{tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memTx struct {
	l        *memLedger
	locked   map[string]bool
	order    []string
	staged   map[string]*entity.InventoryItem
	newSales []*entity.Sale
}

var (
	_ repository.InventoryItemRepository = (*memTx)(nil)
	_ repository.SaleRepository          = memSales{}
)

func (t *memTx) release() {
	for _, id := range t.order {
		t.l.locks[id].Unlock()
	}
}

func (t *memTx) commit() {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	for id, it := range t.staged {
		cp := *it
		t.l.items[id] = &cp
	}
	t.l.sales = append(t.l.sales, t.newSales...)
}

func (t *memTx) exists(id string) bool {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	_, ok := t.l.items[id]
	return ok
}

func (t *memTx) lock(id string) {
	if t.locked[id] {
		return
	}
	t.l.locks[id].Lock()
	t.locked[id] = true
	t.order = append(t.order, id)
}

// get devuelve una copia de la versión vista por la tx (staging o confirmada).
func (t *memTx) get(id string) *entity.InventoryItem {
	if it, ok := t.staged[id]; ok {
		cp := *it
		return &cp
	}
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	it, ok := t.l.items[id]
	if !ok {
		return nil
	}
	cp := *it
	return &cp
}

func (t *memTx) put(it *entity.InventoryItem) error {
	if it.PacksInStock < 0 || it.PiecesInStock < 0 {
		return errCheckViolation
	}
	t.staged[it.ID] = it
	return nil
}

func (t *memTx) Create(_ context.Context, item *entity.InventoryItem) error {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	cp := *item
	t.l.items[item.ID] = &cp
	t.l.locks[item.ID] = &sync.Mutex{}
	return nil
}

func (t *memTx) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return t.get(id), nil
}

func (t *memTx) List(context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, id := range t.ids() {
		out = append(out, t.get(id))
	}
	return out, nil
}

func (t *memTx) ids() []string {
	t.l.mu.Lock()
	ids := make([]string, 0, len(t.l.items))
	for id := range t.l.items {
		ids = append(ids, id)
	}
	t.l.mu.Unlock()
	sort.Strings(ids)
	return ids
}

func (t *memTx) GetForUpdate(_ context.Context, id string) (*entity.InventoryItem, error) {
	if !t.exists(id) {
		return nil, nil
	}
	t.lock(id)
	return t.get(id), nil
}

func (t *memTx) ListForReplenish(_ context.Context, lowPieces int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, id := range t.ids() {
		t.lock(id)
		it := t.get(id)
		if it.PiecesInStock < lowPieces && it.PacksInStock > 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (t *memTx) DecrementStock(_ context.Context, id, saleType string, qty int) error {
	if t.l.failDecrement != nil {
		return t.l.failDecrement
	}
	it := t.get(id)
	if it == nil {
		return domain.ErrItemNotFound
	}
	if saleType == entity.SaleTypePack {
		it.PacksInStock -= qty
	} else {
		it.PiecesInStock -= qty
	}
	return t.put(it)
}

func (t *memTx) ApplyRestock(_ context.Context, id string, p entity.RestockPatch) (*entity.InventoryItem, error) {
	it := t.get(id)
	if it == nil {
		return nil, nil
	}
	if p.PacksAdded != nil {
		it.PacksInStock += *p.PacksAdded
	}
	if p.PiecesAdded != nil {
		it.PiecesInStock += *p.PiecesAdded
	}
	if p.PurchasePricePack != nil {
		v := *p.PurchasePricePack
		it.PurchasePricePack = &v
	}
	if p.SellingPricePack != nil {
		v := *p.SellingPricePack
		it.SellingPricePack = &v
	}
	if err := t.put(it); err != nil {
		return nil, err
	}
	return t.get(id), nil
}

func (t *memTx) OpenPacks(_ context.Context, id string, packs, pieces int) (*entity.InventoryItem, error) {
	if err := t.l.failOpenPacks[id]; err != nil {
		return nil, err
	}
	it := t.get(id)
	if it == nil {
		return nil, nil
	}
	it.PacksInStock -= packs
	it.PiecesInStock += pieces
	if err := t.put(it); err != nil {
		return nil, err
	}
	return t.get(id), nil
}

func (t *memTx) ListWithThreshold(context.Context, bool) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (t *memTx) MarkLowStockNotified(context.Context, []string) error { return nil }

func (t *memTx) ResetLowStockNotified(context.Context, string) (bool, error) { return false, nil }

// memSales libro de ventas de la tx; las ventas se publican en el commit.
type memSales struct{ t *memTx }

func (s memSales) Create(_ context.Context, sale *entity.Sale) error {
	sale.SaleDate = time.Now()
	cp := *sale
	s.t.newSales = append(s.t.newSales, &cp)
	return nil
}

func (s memSales) ListByInventory(_ context.Context, inventoryID string) ([]*entity.Sale, error) {
	s.t.l.mu.Lock()
	defer s.t.l.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range s.t.l.sales {
		if sale.InventoryID == inventoryID {
			out = append(out, sale)
		}
	}
	return out, nil
}
