package session

import (
	"log/slog"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/shopspring/decimal"
)

// CartView is the cart as the collaborator renders it.
type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
}

type SubmissionPhase string

const (
	PhaseIdle       SubmissionPhase = "idle"
	PhaseSubmitting SubmissionPhase = "submitting"
	PhaseError      SubmissionPhase = "error"
	PhaseSuccess    SubmissionPhase = "success"
)

type SubmissionStatus struct {
	Phase       SubmissionPhase `json:"phase"`
	Message     string          `json:"message,omitempty"`
	OrderNumber string          `json:"order_number,omitempty"`
}

// Notifier receives state changes for rendering. Implementations are called
// with the controller locked and must not call back into it.
type Notifier interface {
	CartChanged(CartView)
	CheckoutEligibilityChanged(enabled bool)
	SubmissionChanged(SubmissionStatus)
}

type NopNotifier struct{}

func (NopNotifier) CartChanged(CartView)               {}
func (NopNotifier) CheckoutEligibilityChanged(bool)    {}
func (NopNotifier) SubmissionChanged(SubmissionStatus) {}

// LogNotifier writes every notification at debug level.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) CartChanged(v CartView) {
	n.log.Debug("cart changed", slog.Int("lines", len(v.Lines)), slog.String("total", v.Total.StringFixed(2)))
}

func (n *LogNotifier) CheckoutEligibilityChanged(enabled bool) {
	n.log.Debug("checkout eligibility", slog.Bool("enabled", enabled))
}

func (n *LogNotifier) SubmissionChanged(s SubmissionStatus) {
	n.log.Debug("submission changed", slog.String("phase", string(s.Phase)), slog.String("order_number", s.OrderNumber))
}
