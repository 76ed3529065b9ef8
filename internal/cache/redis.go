package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	failuresKey = "confirmations:failed"
	maxFailures = 500
)

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
		now:     time.Now,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
	now     func() time.Time
}

func (r RedisCache) Get(ctx context.Context, sessionID, orderNumber string) (*domain.Receipt, error) {
	key := receiptKey(sessionID, orderNumber)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var receipt domain.Receipt
	if err2 := json.Unmarshal(data, &receipt); err2 != nil {
		return nil, fmt.Errorf("unmarshal receipt failed: %w", err2)
	}

	return &receipt, nil
}

func (r RedisCache) Set(ctx context.Context, sessionID string, receipt *domain.Receipt) error {
	key := receiptKey(sessionID, receipt.OrderNumber)
	jsonReceipt, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("marshal receipt failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, jsonReceipt, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// RecordConfirmationFailure prepends the failure to a capped list.
func (r RedisCache) RecordConfirmationFailure(ctx context.Context, orderNumber string, cause error) error {
	data, err := json.Marshal(ConfirmationFailure{
		OrderNumber: orderNumber,
		Error:       cause.Error(),
		FailedAt:    r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal confirmation failure failed: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, failuresKey, data)
	pipe.LTrim(ctx, failuresKey, 0, maxFailures-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record failure failed: %w", err)
	}
	return nil
}

// ConfirmationFailures returns up to limit failures, newest first.
func (r RedisCache) ConfirmationFailures(ctx context.Context, limit int64) ([]ConfirmationFailure, error) {
	if limit <= 0 {
		return nil, nil
	}
	values, err := r.client.LRange(ctx, failuresKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}

	failures := make([]ConfirmationFailure, 0, len(values))
	for _, v := range values {
		var f ConfirmationFailure
		if err := json.Unmarshal([]byte(v), &f); err != nil {
			return nil, fmt.Errorf("unmarshal confirmation failure failed: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, nil
}

func receiptKey(sessionID, orderNumber string) string {
	return fmt.Sprintf("receipt:%s:%s", sessionID, orderNumber)
}
