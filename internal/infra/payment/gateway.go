// Package payment issues the outbound payment for a pending registration.
package payment

import (
	"context"
	"errors"
)

// ErrRejected is returned when the payment endpoint answers with a non-2xx status.
var ErrRejected = errors.New("Error al procesar el pago")

// Request is what gets charged.
type Request struct {
	Amount      int64
	Description string
	// Reference identifies the browser the registration belongs to.
	Reference string
}

// Receipt is a successful gateway answer.
type Receipt struct {
	Provider string
	// Settled is the amount as the provider reported it. It stays empty while a
	// Checkout payment is still open.
	Settled string
	// CheckoutURL is set when the payer still has to complete payment elsewhere.
	CheckoutURL string
	SessionID   string
}

// Gateway performs exactly one payment attempt per call.
type Gateway interface {
	Provider() string
	Pay(ctx context.Context, req Request) (Receipt, error)
}
