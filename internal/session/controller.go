package session

import (
	"context"
	"errors"
	"sync"

	"github.com/loscheesy/ordering/internal/cart"
	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/submission"
	"github.com/loscheesy/ordering/internal/variant"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition  = errors.New("illegal transition of session state")
	ErrCartLocked         = errors.New("cart and location can only change while browsing")
	ErrCheckoutNotAllowed = errors.New("checkout requires a non-empty cart and a pickup location")
	ErrSubmitInProgress   = errors.New("an order submission is already in progress")
	ErrInvalidDelta       = errors.New("quantity delta must be 1 or -1")
)

// Messages shown to the customer on failed submissions.
const (
	msgValidation = "Por favor completa los campos obligatorios: Nombre y Teléfono"
	msgDelivery   = "Hubo un error al enviar tu pedido. Por favor intenta de nuevo o llama al restaurante."
)

// Submitter performs the network side of an order submission.
type Submitter interface {
	Submit(ctx context.Context, customer domain.CustomerInfo, lines []domain.CartLine, loc domain.Location) (domain.Receipt, error)
}

// View is everything the collaborator needs to render the session.
type View struct {
	State           domain.SessionState `json:"state"`
	Lines           []domain.CartLine   `json:"lines"`
	Total           decimal.Decimal     `json:"total"`
	Location        domain.Location     `json:"location,omitempty"`
	CheckoutEnabled bool                `json:"checkout_enabled"`
	Customer        domain.CustomerInfo `json:"customer"`
	Submission      SubmissionStatus    `json:"submission"`
	Receipt         *domain.Receipt     `json:"receipt,omitempty"`
}

// Controller owns one customer's cart and gates which screen is active.
// Every command runs to completion under the lock except the network part of
// SubmitOrder, during which the Submitting state rejects other commands.
type Controller struct {
	mu sync.Mutex

	state      domain.SessionState
	cart       *cart.Cart
	location   domain.Location
	customer   domain.CustomerInfo
	submission SubmissionStatus
	receipt    *domain.Receipt

	submitter Submitter
	notifier  Notifier
}

func NewController(submitter Submitter, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Controller{
		state:      domain.StateBrowsing,
		cart:       cart.New(),
		submission: SubmissionStatus{Phase: PhaseIdle},
		submitter:  submitter,
		notifier:   notifier,
	}
}

func (c *Controller) SelectLocation(loc domain.Location) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateBrowsing {
		return ErrCartLocked
	}
	c.location = loc
	c.notifyEligibility()
	return nil
}

// AddToCart resolves the selection's price and variant and adds one unit.
func (c *Controller) AddToCart(sel domain.MenuSelection, choice variant.Choice) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateBrowsing {
		return ErrCartLocked
	}

	res, err := variant.Resolve(sel, choice)
	if err != nil {
		return err
	}
	if err := c.cart.Add(sel.ItemID, sel.Name, res.UnitPrice, res.Variant); err != nil {
		return err
	}
	c.notifyCart()
	return nil
}

func (c *Controller) ChangeQuantity(index, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateBrowsing {
		return ErrCartLocked
	}

	var err error
	switch delta {
	case 1:
		err = c.cart.Increment(index)
	case -1:
		err = c.cart.Decrement(index)
	default:
		return ErrInvalidDelta
	}
	if err != nil {
		return err
	}
	c.notifyCart()
	return nil
}

func (c *Controller) RemoveLine(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateBrowsing {
		return ErrCartLocked
	}
	if err := c.cart.Remove(index); err != nil {
		return err
	}
	c.notifyCart()
	return nil
}

func (c *Controller) ProceedToCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.StateSubmitting {
		return ErrSubmitInProgress
	}
	if !c.canMove(domain.StateBrowsing, domain.StateCheckoutForm) {
		return ErrInvalidTransition
	}
	if !c.checkoutEligible() {
		return ErrCheckoutNotAllowed
	}
	c.state = domain.StateCheckoutForm
	return nil
}

func (c *Controller) BackToCart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.canMove(domain.StateCheckoutForm, domain.StateBrowsing) {
		return ErrInvalidTransition
	}
	c.state = domain.StateBrowsing
	return nil
}

// SubmitOrder validates the form and submits the cart. A submit while another
// is in flight returns ErrSubmitInProgress without any I/O.
func (c *Controller) SubmitOrder(ctx context.Context, customer domain.CustomerInfo) (domain.Receipt, error) {
	c.mu.Lock()
	if c.state == domain.StateSubmitting {
		c.mu.Unlock()
		return domain.Receipt{}, ErrSubmitInProgress
	}
	if !c.canMove(domain.StateCheckoutForm, domain.StateSubmitting) {
		c.mu.Unlock()
		return domain.Receipt{}, ErrInvalidTransition
	}

	c.customer = customer
	if err := submission.Validate(customer); err != nil {
		c.setSubmission(SubmissionStatus{Phase: PhaseError, Message: msgValidation})
		c.mu.Unlock()
		return domain.Receipt{}, err
	}

	c.state = domain.StateSubmitting
	c.setSubmission(SubmissionStatus{Phase: PhaseSubmitting})
	lines := c.cart.Lines()
	loc := c.location
	c.mu.Unlock()

	receipt, err := c.submitter.Submit(ctx, customer, lines, loc)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = domain.StateCheckoutForm
		c.setSubmission(SubmissionStatus{Phase: PhaseError, Message: msgDelivery})
		return domain.Receipt{}, err
	}

	c.state = domain.StateConfirmed
	c.receipt = &receipt
	c.setSubmission(SubmissionStatus{Phase: PhaseSuccess, OrderNumber: receipt.OrderNumber})
	return receipt, nil
}

// ResetOrder starts a new order after a confirmation.
func (c *Controller) ResetOrder() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.canMove(domain.StateConfirmed, domain.StateBrowsing) {
		return ErrInvalidTransition
	}

	c.state = domain.StateBrowsing
	c.cart.Clear()
	c.location = ""
	c.customer = domain.CustomerInfo{}
	c.receipt = nil
	c.setSubmission(SubmissionStatus{Phase: PhaseIdle})
	c.notifyCart()
	return nil
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	var receipt *domain.Receipt
	if c.receipt != nil {
		r := *c.receipt
		receipt = &r
	}

	return View{
		State:           c.state,
		Lines:           c.cart.Lines(),
		Total:           c.cart.Total(),
		Location:        c.location,
		CheckoutEnabled: c.checkoutEligible(),
		Customer:        c.customer,
		Submission:      c.submission,
		Receipt:         receipt,
	}
}

func (c *Controller) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// canMove reports whether the session is on from and from -> to is allowed.
// Transitions out of Submitting belong to SubmitOrder alone.
func (c *Controller) canMove(from, to domain.SessionState) bool {
	return c.state == from && domain.CanTransitionTo(from, to)
}

func (c *Controller) checkoutEligible() bool {
	return !c.cart.IsEmpty() && c.location.IsSet()
}

func (c *Controller) notifyCart() {
	c.notifier.CartChanged(CartView{Lines: c.cart.Lines(), Total: c.cart.Total()})
	c.notifyEligibility()
}

func (c *Controller) notifyEligibility() {
	c.notifier.CheckoutEligibilityChanged(c.checkoutEligible())
}

func (c *Controller) setSubmission(s SubmissionStatus) {
	c.submission = s
	c.notifier.SubmissionChanged(s)
}
