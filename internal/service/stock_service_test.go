package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryStore is an in-memory StockRepository with the same locking contract
// as the Postgres implementation: ItemForUpdate takes an exclusive per-item
// lock held until the unit of work commits or rolls back, and writes staged
// inside a unit of work become visible all at once on commit.
type memoryStore struct {
	mu           sync.Mutex
	itemLocks    map[uuid.UUID]*sync.Mutex
	items        map[uuid.UUID]model.StockItem
	transactions []model.StockTransaction
	seq          int64

	failUpdateBalance bool
	failCreateTx      bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		itemLocks: make(map[uuid.UUID]*sync.Mutex),
		items:     make(map[uuid.UUID]model.StockItem),
	}
}

func (m *memoryStore) lockFor(itemID uuid.UUID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.itemLocks[itemID]; !ok {
		m.itemLocks[itemID] = &sync.Mutex{}
	}
	return m.itemLocks[itemID]
}

func (m *memoryStore) CreateItem(item *model.StockItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	m.items[item.ID] = *item
	return nil
}

func (m *memoryStore) FindItemsByOwner(ownerID uuid.UUID) ([]model.StockItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []model.StockItem
	for _, item := range m.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (m *memoryStore) FindTransactions(ownerID, itemID uuid.UUID) ([]model.StockTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.StockTransaction
	for _, stx := range m.transactions {
		if stx.OwnerID == ownerID && stx.ItemID == itemID {
			result = append(result, stx)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq > result[j].Seq })
	return result, nil
}

func (m *memoryStore) Atomic(ctx context.Context, fn func(repository.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memoryLedgerTx{store: m}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memoryLedgerTx struct {
	store *memoryStore
	held  []*sync.Mutex

	stagedBalances map[uuid.UUID]float64
	stagedTxs      []model.StockTransaction
}

func (t *memoryLedgerTx) ItemForUpdate(ownerID, itemID uuid.UUID) (*model.StockItem, error) {
	lock := t.store.lockFor(itemID)
	lock.Lock()
	t.held = append(t.held, lock)

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	item, ok := t.store.items[itemID]
	if !ok || item.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := item
	return &copied, nil
}

func (t *memoryLedgerTx) UpdateBalance(itemID uuid.UUID, balance float64) error {
	if t.store.failUpdateBalance {
		return errors.New("connection reset")
	}
	if t.stagedBalances == nil {
		t.stagedBalances = make(map[uuid.UUID]float64)
	}
	t.stagedBalances[itemID] = balance
	return nil
}

func (t *memoryLedgerTx) CreateTransaction(stx *model.StockTransaction) error {
	if t.store.failCreateTx {
		return errors.New("connection reset")
	}
	stx.ID = uuid.New()
	stx.CreatedAt = time.Now()
	t.stagedTxs = append(t.stagedTxs, *stx)
	return nil
}

func (t *memoryLedgerTx) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id, balance := range t.stagedBalances {
		item := t.store.items[id]
		item.Balance = balance
		t.store.items[id] = item
	}
	for _, stx := range t.stagedTxs {
		t.store.seq++
		stx.Seq = t.store.seq
		t.store.transactions = append(t.store.transactions, stx)
	}
}

func (t *memoryLedgerTx) release() {
	for _, lock := range t.held {
		lock.Unlock()
	}
	t.held = nil
}

func (m *memoryStore) itemState(id uuid.UUID) model.StockItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id]
}

func (m *memoryStore) txCount(itemID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, stx := range m.transactions {
		if stx.ItemID == itemID {
			count++
		}
	}
	return count
}

func registerTestItem(t *testing.T, svc StockService, owner uuid.UUID, name string, threshold, opening float64) *model.StockItem {
	t.Helper()
	item, err := svc.RegisterItem(owner, &RegisterItemRequest{
		Name:           name,
		Unit:           "kg",
		Threshold:      threshold,
		OpeningBalance: opening,
	})
	require.NoError(t, err)
	return item
}

func TestRegisterItem_EmptyName(t *testing.T) {
	svc := NewStockService(newMemoryStore(), nil)

	_, err := svc.RegisterItem(uuid.New(), &RegisterItemRequest{Name: ""})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestRegisterItem_Defaults(t *testing.T) {
	svc := NewStockService(newMemoryStore(), nil)
	owner := uuid.New()

	item, err := svc.RegisterItem(owner, &RegisterItemRequest{Name: "Urea"})

	require.NoError(t, err)
	assert.Equal(t, owner, item.OwnerID)
	assert.Equal(t, float64(0), item.Threshold)
	assert.Equal(t, float64(0), item.Balance)
	assert.False(t, item.BelowThreshold)
}

func TestListItems_OrderedWithThresholdFlag(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()

	registerTestItem(t, svc, owner, "Urea", 20, 50)
	registerTestItem(t, svc, owner, "DAP", 20, 10)
	registerTestItem(t, svc, uuid.New(), "Other farm seed", 0, 0)

	items, err := svc.ListItems(owner)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "DAP", items[0].Name)
	assert.Equal(t, "Urea", items[1].Name)
	assert.True(t, items[0].BelowThreshold)
	assert.False(t, items[1].BelowThreshold)
}

func TestApplyTransaction_OutOnEmptyItem(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Seed-A", 0, 0)

	_, err := svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionOut,
		Quantity:  5,
	})

	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, float64(0), store.itemState(item.ID).Balance)
	assert.Equal(t, 0, store.txCount(item.ID))
}

func TestApplyTransaction_InThenOut(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Seed-A", 0, 0)

	in, err := svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionIn,
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(10), in.Item.Balance)
	assert.Equal(t, float64(10), in.Transaction.Quantity)

	out, err := svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionOut,
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), out.Item.Balance)

	assert.Equal(t, 2, store.txCount(item.ID))
	assert.Equal(t, float64(0), store.itemState(item.ID).Balance)
}

func TestApplyTransaction_BelowThresholdAfterDraw(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Urea", 20, 50)

	result, err := svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionOut,
		Quantity:  40,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(10), result.Item.Balance)
	assert.True(t, result.Item.BelowThreshold)

	items, err := svc.ListItems(owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].BelowThreshold)
}

func TestApplyTransaction_UnknownItem(t *testing.T) {
	svc := NewStockService(newMemoryStore(), nil)

	_, err := svc.ApplyTransaction(context.Background(), uuid.New(), &ApplyTransactionRequest{
		ItemID:    uuid.New(),
		Direction: model.DirectionIn,
		Quantity:  1,
	})

	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestApplyTransaction_OtherOwnersItemLooksMissing(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Seed-A", 0, 100)

	_, err := svc.ApplyTransaction(context.Background(), uuid.New(), &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionOut,
		Quantity:  1,
	})

	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, float64(100), store.itemState(item.ID).Balance)
}

func TestApplyTransaction_InvalidInput(t *testing.T) {
	svc := NewStockService(newMemoryStore(), nil)
	owner := uuid.New()

	cases := []struct {
		name string
		req  ApplyTransactionRequest
	}{
		{"zero quantity", ApplyTransactionRequest{ItemID: uuid.New(), Direction: model.DirectionIn, Quantity: 0}},
		{"negative quantity", ApplyTransactionRequest{ItemID: uuid.New(), Direction: model.DirectionOut, Quantity: -3}},
		{"bad direction", ApplyTransactionRequest{ItemID: uuid.New(), Direction: "sideways", Quantity: 1}},
		{"missing item id", ApplyTransactionRequest{Direction: model.DirectionIn, Quantity: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ApplyTransaction(context.Background(), owner, &tc.req)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestApplyTransaction_StoreFailureLeavesNoTrace(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Seed-A", 0, 50)

	store.failUpdateBalance = true
	_, err := svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionOut,
		Quantity:  10,
	})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, float64(50), store.itemState(item.ID).Balance)
	assert.Equal(t, 0, store.txCount(item.ID))
}

func TestApplyTransaction_CancelledContext(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Seed-A", 0, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ApplyTransaction(ctx, owner, &ApplyTransactionRequest{
		ItemID:    item.ID,
		Direction: model.DirectionOut,
		Quantity:  10,
	})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, float64(50), store.itemState(item.ID).Balance)
	assert.Equal(t, 0, store.txCount(item.ID))
}

func TestApplyTransaction_ConcurrentOverdraw(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Diesel", 0, 100)

	// Each draw of 60 is individually valid, but only one can fit
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
				ItemID:    item.ID,
				Direction: model.DirectionOut,
				Quantity:  60,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrInsufficientStock)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, float64(40), store.itemState(item.ID).Balance)
	assert.Equal(t, 1, store.txCount(item.ID))
}

func TestApplyTransaction_ConcurrentFoldConsistency(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	const opening = 50.0
	item := registerTestItem(t, svc, owner, "Wheat", 0, opening)

	// Mixed ins and outs hammering one item; whatever commits must fold to
	// the final balance and the balance must never have gone negative.
	const workers = 40
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := &ApplyTransactionRequest{ItemID: item.ID, Direction: model.DirectionIn, Quantity: 7}
			if i%2 == 0 {
				req.Direction = model.DirectionOut
				req.Quantity = 11
			}
			_, _ = svc.ApplyTransaction(context.Background(), owner, req)
		}(i)
	}
	wg.Wait()

	final := store.itemState(item.ID)
	assert.GreaterOrEqual(t, final.Balance, float64(0))

	transactions, err := svc.ListTransactions(owner, item.ID)
	require.NoError(t, err)

	folded := opening
	for _, stx := range transactions {
		folded += stx.Delta()
	}
	assert.Equal(t, final.Balance, folded)

	// Replaying in commit order never transits below zero
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].Seq < transactions[j].Seq })
	running := opening
	for _, stx := range transactions {
		running += stx.Delta()
		assert.GreaterOrEqual(t, running, float64(0))
	}
}

func TestApplyTransaction_IndependentItems(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	itemA := registerTestItem(t, svc, owner, "Seed-A", 0, 100)
	itemB := registerTestItem(t, svc, owner, "Seed-B", 0, 100)

	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
			ItemID: itemA.ID, Direction: model.DirectionOut, Quantity: 30,
		})
	}()
	go func() {
		defer wg.Done()
		_, errB = svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
			ItemID: itemB.ID, Direction: model.DirectionOut, Quantity: 30,
		})
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, float64(70), store.itemState(itemA.ID).Balance)
	assert.Equal(t, float64(70), store.itemState(itemB.ID).Balance)
}

func TestListTransactions_NewestFirst(t *testing.T) {
	store := newMemoryStore()
	svc := NewStockService(store, nil)
	owner := uuid.New()
	item := registerTestItem(t, svc, owner, "Seed-A", 0, 0)

	quantities := []float64{10, 4, 7}
	directions := []model.TransactionDirection{model.DirectionIn, model.DirectionOut, model.DirectionIn}
	for i := range quantities {
		_, err := svc.ApplyTransaction(context.Background(), owner, &ApplyTransactionRequest{
			ItemID:    item.ID,
			Direction: directions[i],
			Quantity:  quantities[i],
		})
		require.NoError(t, err)
	}

	transactions, err := svc.ListTransactions(owner, item.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	// Reverse chronological by commit order
	for i := 1; i < len(transactions); i++ {
		assert.Greater(t, transactions[i-1].Seq, transactions[i].Seq)
	}

	total := 0.0
	for _, stx := range transactions {
		total += stx.Delta()
	}
	assert.Equal(t, store.itemState(item.ID).Balance, total)
}
