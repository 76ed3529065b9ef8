package cache

import (
	"context"
	"errors"
	"time"

	"github.com/loscheesy/ordering/internal/domain"
)

// ReceiptCache keeps confirmation receipts so the confirmation screen can be
// rendered again after the session moved on.
type ReceiptCache interface {
	Get(ctx context.Context, sessionID, orderNumber string) (*domain.Receipt, error)
	Set(ctx context.Context, sessionID string, receipt *domain.Receipt) error
}

// ConfirmationFailure is one customer confirmation that could not be sent.
type ConfirmationFailure struct {
	OrderNumber string    `json:"order_number"`
	Error       string    `json:"error"`
	FailedAt    time.Time `json:"failed_at"`
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache is used when no Redis is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, string) (*domain.Receipt, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, string, *domain.Receipt) error {
	return nil
}

func (NopCache) RecordConfirmationFailure(context.Context, string, error) error {
	return nil
}

func (NopCache) ConfirmationFailures(context.Context, int64) ([]ConfirmationFailure, error) {
	return nil, nil
}
