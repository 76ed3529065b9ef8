package store

import (
	"context"
	"testing"
	"time"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/session"
	"github.com/loscheesy/ordering/internal/variant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) Submit(ctx context.Context, customer domain.CustomerInfo, lines []domain.CartLine, loc domain.Location) (domain.Receipt, error) {
	close(b.started)
	<-b.release
	return domain.Receipt{OrderNumber: "LC-1111"}, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, sub session.Submitter) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newMemoryStore(ttl, func() *session.Controller {
		return session.NewController(sub, nil)
	}, clock.now)
	return s, clock
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(time.Hour, nil)

	id, created := s.Create()
	require.NotEmpty(t, id)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, created, got)
	assert.Equal(t, 1, s.Len())
}

func TestCreate_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(time.Hour, nil)

	a, _ := s.Create()
	b, _ := s.Create()

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newTestStore(time.Hour, nil)

	_, err := s.Get("missing")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(time.Hour, nil)
	id, _ := s.Create()

	s.Delete(id)

	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestExpireSessions(t *testing.T) {
	s, clock := newTestStore(30*time.Minute, nil)
	stale, _ := s.Create()
	clock.advance(20 * time.Minute)
	fresh, _ := s.Create()
	clock.advance(15 * time.Minute)

	expired := s.expireSessions()

	assert.Equal(t, 1, expired)
	_, err := s.Get(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(fresh)
	assert.NoError(t, err)
}

func TestGet_RefreshesLastSeen(t *testing.T) {
	s, clock := newTestStore(30*time.Minute, nil)
	id, _ := s.Create()

	clock.advance(25 * time.Minute)
	_, err := s.Get(id)
	require.NoError(t, err)
	clock.advance(25 * time.Minute)

	assert.Equal(t, 0, s.expireSessions())
}

func TestExpireSessions_SkipsSubmitting(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	s, clock := newTestStore(time.Minute, sub)
	id, ctrl := s.Create()

	p := decimal.RequireFromString("2.00")
	require.NoError(t, ctrl.AddToCart(domain.MenuSelection{ItemID: "agua", Name: "Agua", FixedPrice: &p}, variant.Choice{}))
	require.NoError(t, ctrl.SelectLocation("dorado"))
	require.NoError(t, ctrl.ProceedToCheckout())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = ctrl.SubmitOrder(context.Background(), domain.CustomerInfo{Name: "Ana", Phone: "787"})
	}()
	<-sub.started

	clock.advance(time.Hour)
	assert.Equal(t, 0, s.expireSessions())
	_, err := s.Get(id)
	assert.NoError(t, err)

	close(sub.release)
	<-done
}

func TestNewMemoryStore_Close(t *testing.T) {
	s := NewMemoryStore(time.Hour, func() *session.Controller {
		return session.NewController(nil, nil)
	})
	s.Create()

	assert.NoError(t, s.Close())
}
