package submission

import (
	"fmt"
	"strings"
)

// ValidationError means required customer fields are missing. No I/O was performed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// DeliveryError means the primary submission did not reach the restaurant.
// The cart is left intact; the caller decides whether to resubmit.
type DeliveryError struct {
	OrderNumber string
	Endpoint    string
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("order %s not delivered to %s: %v", e.OrderNumber, e.Endpoint, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ConfirmationError means the customer confirmation could not be sent.
// It is recorded and logged, never returned to the customer.
type ConfirmationError struct {
	OrderNumber string
	Err         error
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("confirmation for order %s failed: %v", e.OrderNumber, e.Err)
}

func (e *ConfirmationError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from an intake endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("intake responded with status %d", e.StatusCode)
}
