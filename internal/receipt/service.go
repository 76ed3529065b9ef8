package receipt

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/loscheesy/ordering/internal/cache"
	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/logger"
	"golang.org/x/sync/singleflight"
)

var ErrReceiptNotFound = errors.New("receipt not found")

const saveTimeout = time.Second

type Service struct {
	cache cache.ReceiptCache
	sfg   singleflight.Group // collapses concurrent lookups of the same receipt
}

func NewService(c cache.ReceiptCache) *Service {
	return &Service{cache: c}
}

func (s *Service) Get(ctx context.Context, sessionID, orderNumber string) (*domain.Receipt, error) {
	v, err, _ := s.sfg.Do(sessionID+":"+orderNumber, func() (interface{}, error) {
		receipt, err := s.cache.Get(ctx, sessionID, orderNumber)
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrReceiptNotFound
		}
		if err != nil {
			return nil, err
		}
		return receipt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Receipt), nil
}

// Save caches the receipt. Failures are logged only; the order already went through.
func (s *Service) Save(ctx context.Context, sessionID string, receipt domain.Receipt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, sessionID, &receipt); err != nil {
		logger.FromContext(ctx).Warn("receipt cache set error",
			slog.String("order_number", receipt.OrderNumber), slog.Any("error", err))
	}
}
