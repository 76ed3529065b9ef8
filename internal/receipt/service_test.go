package receipt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loscheesy/ordering/internal/cache"
	"github.com/loscheesy/ordering/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCache struct {
	m        sync.Mutex
	receipts map[string]*domain.Receipt
	getErr   error
	setErr   error
	gets     atomic.Int32
	delay    time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{receipts: make(map[string]*domain.Receipt)}
}

func (m *mockCache) Get(_ context.Context, sessionID, orderNumber string) (*domain.Receipt, error) {
	m.gets.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.m.Lock()
	defer m.m.Unlock()
	r, ok := m.receipts[sessionID+":"+orderNumber]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return r, nil
}

func (m *mockCache) Set(_ context.Context, sessionID string, r *domain.Receipt) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.m.Lock()
	defer m.m.Unlock()
	m.receipts[sessionID+":"+r.OrderNumber] = r
	return nil
}

func testReceipt() domain.Receipt {
	return domain.Receipt{
		OrderNumber:  "LC-1234",
		LocationName: "Dorado",
		Total:        decimal.RequireFromString("14.00"),
	}
}

func TestSaveAndGet(t *testing.T) {
	svc := NewService(newMockCache())
	ctx := context.Background()

	svc.Save(ctx, "session-1", testReceipt())
	got, err := svc.Get(ctx, "session-1", "LC-1234")

	require.NoError(t, err)
	assert.Equal(t, "Dorado", got.LocationName)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newMockCache())

	_, err := svc.Get(context.Background(), "session-1", "LC-9999")

	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestGet_CacheError(t *testing.T) {
	mc := newMockCache()
	mc.getErr = errors.New("connection reset")
	svc := NewService(mc)

	_, err := svc.Get(context.Background(), "session-1", "LC-1234")

	assert.ErrorIs(t, err, mc.getErr)
	assert.NotErrorIs(t, err, ErrReceiptNotFound)
}

func TestSave_ErrorIsSwallowed(t *testing.T) {
	mc := newMockCache()
	mc.setErr = errors.New("oom")
	svc := NewService(mc)

	assert.NotPanics(t, func() {
		svc.Save(context.Background(), "session-1", testReceipt())
	})
}

func TestSave_IgnoresCanceledContext(t *testing.T) {
	mc := newMockCache()
	svc := NewService(mc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Save(ctx, "session-1", testReceipt())

	_, err := svc.Get(context.Background(), "session-1", "LC-1234")
	assert.NoError(t, err)
}

func TestGet_ConcurrentLookupsShareOneCall(t *testing.T) {
	mc := newMockCache()
	mc.delay = 100 * time.Millisecond
	svc := NewService(mc)
	svc.Save(context.Background(), "session-1", testReceipt())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Get(context.Background(), "session-1", "LC-1234")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, mc.gets.Load(), int32(10))
}
