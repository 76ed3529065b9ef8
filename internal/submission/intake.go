package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// IntakeClient posts a flat field map to a form intake endpoint.
type IntakeClient interface {
	Send(ctx context.Context, endpoint string, fields map[string]string) error
}

type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// HTTPIntake sends JSON form posts. Each destination has its own circuit
// breaker; an open breaker fails the call immediately and nothing is retried.
type HTTPIntake struct {
	client   *http.Client
	settings BreakerSettings

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[int]
}

func NewHTTPIntake(timeout time.Duration, settings BreakerSettings) *HTTPIntake {
	return &HTTPIntake{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		settings: settings,
		breakers: make(map[string]*gobreaker.CircuitBreaker[int]),
	}
}

func (h *HTTPIntake) Send(ctx context.Context, endpoint string, fields map[string]string) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal intake fields failed: %w", err)
	}

	_, err = h.breaker(endpoint).Execute(func() (int, error) {
		return h.post(ctx, endpoint, body)
	})
	return err
}

func (h *HTTPIntake) post(ctx context.Context, endpoint string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build intake request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("intake request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp.StatusCode, nil
}

func (h *HTTPIntake) breaker(endpoint string) *gobreaker.CircuitBreaker[int] {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cb, ok := h.breakers[endpoint]; ok {
		return cb
	}

	failures := h.settings.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        endpoint,
		MaxRequests: 1,
		Timeout:     h.settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return failures > 0 && counts.ConsecutiveFailures >= failures
		},
		// 4xx means the endpoint is up but rejected this payload.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("intake breaker state changed",
				slog.String("endpoint", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	h.breakers[endpoint] = cb
	return cb
}
