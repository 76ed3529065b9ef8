package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/loscheesy/ordering/internal/cart"
	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/submission"
	"github.com/loscheesy/ordering/internal/variant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SubmitterMock answers with a fixed receipt or error. When block is set,
// Submit signals started and waits for release.
type SubmitterMock struct {
	mu      sync.Mutex
	calls   int
	receipt domain.Receipt
	err     error

	block   bool
	started chan struct{}
	release chan struct{}
}

func (m *SubmitterMock) Submit(ctx context.Context, customer domain.CustomerInfo, lines []domain.CartLine, loc domain.Location) (domain.Receipt, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.block {
		m.started <- struct{}{}
		<-m.release
	}
	if m.err != nil {
		return domain.Receipt{}, m.err
	}
	return m.receipt, nil
}

func (m *SubmitterMock) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type NotifierMock struct {
	carts       []CartView
	eligibility []bool
	submissions []SubmissionStatus
}

func (n *NotifierMock) CartChanged(v CartView)                  { n.carts = append(n.carts, v) }
func (n *NotifierMock) CheckoutEligibilityChanged(enabled bool) { n.eligibility = append(n.eligibility, enabled) }
func (n *NotifierMock) SubmissionChanged(s SubmissionStatus)    { n.submissions = append(n.submissions, s) }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func burger() domain.MenuSelection {
	return domain.MenuSelection{
		ItemID: "bacon-smash",
		Name:   "Bacon Smash",
		Sizes: []domain.Option{
			{Label: "sencilla", Price: dec("10.00")},
			{Label: "doble", Price: dec("13.00")},
		},
	}
}

func soda() domain.MenuSelection {
	p := dec("2.00")
	return domain.MenuSelection{ItemID: "coca-cola", Name: "Coca-Cola", FixedPrice: &p}
}

var validCustomer = domain.CustomerInfo{Name: "Ana", Phone: "787-555-0101"}

// readyForCheckout returns a controller on the checkout form with a
// 14.00 cart for Hatillo.
func readyForCheckout(t *testing.T, sub Submitter) *Controller {
	t.Helper()
	c := NewController(sub, nil)
	require.NoError(t, c.AddToCart(burger(), variant.Choice{Size: "sencilla"}))
	require.NoError(t, c.AddToCart(soda(), variant.Choice{}))
	require.NoError(t, c.AddToCart(soda(), variant.Choice{}))
	require.NoError(t, c.SelectLocation("hatillo"))
	require.NoError(t, c.ProceedToCheckout())
	return c
}

func TestNewController_Initial(t *testing.T) {
	c := NewController(&SubmitterMock{}, nil)

	v := c.Snapshot()
	assert.Equal(t, domain.StateBrowsing, v.State)
	assert.Empty(t, v.Lines)
	assert.True(t, v.Total.IsZero())
	assert.False(t, v.CheckoutEnabled)
	assert.Equal(t, PhaseIdle, v.Submission.Phase)
}

func TestCheckoutEligibility(t *testing.T) {
	n := &NotifierMock{}
	c := NewController(&SubmitterMock{}, n)

	require.NoError(t, c.AddToCart(soda(), variant.Choice{}))
	assert.False(t, c.Snapshot().CheckoutEnabled)
	assert.ErrorIs(t, c.ProceedToCheckout(), ErrCheckoutNotAllowed)

	require.NoError(t, c.SelectLocation("dorado"))
	assert.True(t, c.Snapshot().CheckoutEnabled)

	require.NoError(t, c.RemoveLine(0))
	assert.False(t, c.Snapshot().CheckoutEnabled)
	assert.ErrorIs(t, c.ProceedToCheckout(), ErrCheckoutNotAllowed)
	assert.Equal(t, domain.StateBrowsing, c.State())

	require.NotEmpty(t, n.eligibility)
	assert.False(t, n.eligibility[len(n.eligibility)-1])
	require.NotEmpty(t, n.carts)
	assert.Empty(t, n.carts[len(n.carts)-1].Lines)
}

func TestAddToCart_MergesAndTotals(t *testing.T) {
	c := NewController(&SubmitterMock{}, nil)

	require.NoError(t, c.AddToCart(burger(), variant.Choice{Size: "doble"}))
	require.NoError(t, c.AddToCart(burger(), variant.Choice{Size: "doble"}))
	require.NoError(t, c.AddToCart(burger(), variant.Choice{Size: "sencilla"}))

	v := c.Snapshot()
	require.Len(t, v.Lines, 2)
	assert.Equal(t, 2, v.Lines[0].Quantity)
	assert.Equal(t, "36.00", v.Total.StringFixed(2))
}

func TestAddToCart_NoPrice(t *testing.T) {
	c := NewController(&SubmitterMock{}, nil)

	err := c.AddToCart(burger(), variant.Choice{})

	assert.ErrorIs(t, err, variant.ErrNoPrice)
	assert.Empty(t, c.Snapshot().Lines)
}

func TestChangeQuantity(t *testing.T) {
	c := NewController(&SubmitterMock{}, nil)
	require.NoError(t, c.AddToCart(soda(), variant.Choice{}))

	require.NoError(t, c.ChangeQuantity(0, 1))
	assert.Equal(t, 2, c.Snapshot().Lines[0].Quantity)

	require.NoError(t, c.ChangeQuantity(0, -1))
	require.NoError(t, c.ChangeQuantity(0, -1))
	assert.Empty(t, c.Snapshot().Lines)

	assert.ErrorIs(t, c.ChangeQuantity(0, 1), cart.ErrLineOutOfRange)
	assert.ErrorIs(t, c.ChangeQuantity(0, 2), ErrInvalidDelta)
}

func TestCartLockedOutsideBrowsing(t *testing.T) {
	c := readyForCheckout(t, &SubmitterMock{})

	assert.ErrorIs(t, c.AddToCart(soda(), variant.Choice{}), ErrCartLocked)
	assert.ErrorIs(t, c.ChangeQuantity(0, 1), ErrCartLocked)
	assert.ErrorIs(t, c.RemoveLine(0), ErrCartLocked)
	assert.ErrorIs(t, c.SelectLocation("dorado"), ErrCartLocked)

	require.NoError(t, c.BackToCart())
	assert.Equal(t, domain.StateBrowsing, c.State())
	assert.NoError(t, c.AddToCart(soda(), variant.Choice{}))
}

func TestIllegalTransitions(t *testing.T) {
	c := NewController(&SubmitterMock{}, nil)

	assert.ErrorIs(t, c.BackToCart(), ErrInvalidTransition)
	assert.ErrorIs(t, c.ResetOrder(), ErrInvalidTransition)
	_, err := c.SubmitOrder(context.Background(), validCustomer)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	c = readyForCheckout(t, &SubmitterMock{})
	assert.ErrorIs(t, c.ProceedToCheckout(), ErrInvalidTransition)
}

func TestSubmitOrder_ValidationStaysOnForm(t *testing.T) {
	sub := &SubmitterMock{}
	c := readyForCheckout(t, sub)

	_, err := c.SubmitOrder(context.Background(), domain.CustomerInfo{Name: "Ana"})

	var verr *submission.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, sub.callCount())

	v := c.Snapshot()
	assert.Equal(t, domain.StateCheckoutForm, v.State)
	assert.Equal(t, PhaseError, v.Submission.Phase)
	assert.Equal(t, msgValidation, v.Submission.Message)
	assert.Len(t, v.Lines, 2)
}

func TestSubmitOrder_DeliveryFailureKeepsCart(t *testing.T) {
	sub := &SubmitterMock{err: &submission.DeliveryError{OrderNumber: "LC-1000", Err: errors.New("boom")}}
	c := readyForCheckout(t, sub)
	before := c.Snapshot()

	_, err := c.SubmitOrder(context.Background(), validCustomer)

	var derr *submission.DeliveryError
	require.ErrorAs(t, err, &derr)

	v := c.Snapshot()
	assert.Equal(t, domain.StateCheckoutForm, v.State)
	assert.Equal(t, before.Lines, v.Lines)
	assert.True(t, before.Total.Equal(v.Total))
	assert.Equal(t, PhaseError, v.Submission.Phase)
	assert.Equal(t, msgDelivery, v.Submission.Message)
	assert.Nil(t, v.Receipt)
}

func TestSubmitOrder_Success(t *testing.T) {
	receipt := domain.Receipt{OrderNumber: "LC-4321", LocationName: "Hatillo", Total: dec("14.00"), PlacedAt: time.Now()}
	n := &NotifierMock{}
	sub := &SubmitterMock{receipt: receipt}
	c := NewController(sub, n)
	require.NoError(t, c.AddToCart(soda(), variant.Choice{}))
	require.NoError(t, c.SelectLocation("hatillo"))
	require.NoError(t, c.ProceedToCheckout())

	got, err := c.SubmitOrder(context.Background(), validCustomer)

	require.NoError(t, err)
	assert.Equal(t, "LC-4321", got.OrderNumber)

	v := c.Snapshot()
	assert.Equal(t, domain.StateConfirmed, v.State)
	assert.Equal(t, PhaseSuccess, v.Submission.Phase)
	assert.Equal(t, "LC-4321", v.Submission.OrderNumber)
	require.NotNil(t, v.Receipt)
	assert.Equal(t, "LC-4321", v.Receipt.OrderNumber)

	require.Len(t, n.submissions, 2)
	assert.Equal(t, PhaseSubmitting, n.submissions[0].Phase)
	assert.Equal(t, PhaseSuccess, n.submissions[1].Phase)
}

func TestSubmitOrder_ReentrantIsRejected(t *testing.T) {
	sub := &SubmitterMock{
		receipt: domain.Receipt{OrderNumber: "LC-5555"},
		block:   true,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := readyForCheckout(t, sub)

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitOrder(context.Background(), validCustomer)
		done <- err
	}()
	<-sub.started

	assert.Equal(t, domain.StateSubmitting, c.State())
	_, err := c.SubmitOrder(context.Background(), validCustomer)
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.ErrorIs(t, c.BackToCart(), ErrInvalidTransition)
	assert.ErrorIs(t, c.AddToCart(soda(), variant.Choice{}), ErrCartLocked)
	assert.ErrorIs(t, c.ProceedToCheckout(), ErrSubmitInProgress)
	assert.ErrorIs(t, c.ResetOrder(), ErrInvalidTransition)
	assert.Equal(t, domain.StateSubmitting, c.State())
	_, err = c.SubmitOrder(context.Background(), validCustomer)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(sub.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.callCount())
	assert.Equal(t, domain.StateConfirmed, c.State())
}

func TestResetOrder(t *testing.T) {
	sub := &SubmitterMock{receipt: domain.Receipt{OrderNumber: "LC-7777"}}
	c := readyForCheckout(t, sub)
	_, err := c.SubmitOrder(context.Background(), validCustomer)
	require.NoError(t, err)

	require.NoError(t, c.ResetOrder())

	v := c.Snapshot()
	assert.Equal(t, domain.StateBrowsing, v.State)
	assert.Empty(t, v.Lines)
	assert.True(t, v.Total.IsZero())
	assert.False(t, v.Location.IsSet())
	assert.Equal(t, domain.CustomerInfo{}, v.Customer)
	assert.Equal(t, PhaseIdle, v.Submission.Phase)
	assert.Nil(t, v.Receipt)
	assert.False(t, v.CheckoutEnabled)
}

func TestProceedToCheckout_OnlyFromBrowsing(t *testing.T) {
	sub := &SubmitterMock{receipt: domain.Receipt{OrderNumber: "LC-8888"}}
	c := readyForCheckout(t, sub)

	assert.ErrorIs(t, c.ProceedToCheckout(), ErrInvalidTransition)
	assert.Equal(t, domain.StateCheckoutForm, c.State())

	_, err := c.SubmitOrder(context.Background(), validCustomer)
	require.NoError(t, err)

	assert.ErrorIs(t, c.ProceedToCheckout(), ErrInvalidTransition)
	assert.ErrorIs(t, c.BackToCart(), ErrInvalidTransition)
	assert.Equal(t, domain.StateConfirmed, c.State())
	assert.Equal(t, 1, sub.callCount())
}
