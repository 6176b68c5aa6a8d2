package payment

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured    = errors.New("payment provider is not configured")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Gateway abstracts the hosted payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// SessionsByPaymentIntent resolves sessions from a payment-intent id. Needed
	// because intent events carry no order reference of their own.
	SessionsByPaymentIntent(ctx context.Context, paymentIntentID string) ([]CheckoutSession, error)
	// VerifyWebhook checks the provider signature over the raw payload and
	// decodes the event.
	VerifyWebhook(payload []byte, sigHeader string) (*Event, error)
}
