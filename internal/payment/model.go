package payment

import "encoding/json"

// LineItem is one checkout line as presented to the payment provider.
type LineItem struct {
	Name     string
	Price    float64 // pre-tax unit price
	Quantity int
}

// CheckoutParams describes a hosted checkout session to create.
type CheckoutParams struct {
	SuccessURL string
	CancelURL  string
	LineItems  []LineItem
	// Metadata is the only binding between the provider session and the order.
	Metadata map[string]string
}

// CheckoutSession is the provider's view of a hosted payment page.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

// Event is a signed provider webhook event.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Webhook event types the confirmation flow recognizes.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentSucceeded  = "payment_intent.succeeded"
	EventPaymentFailed     = "payment_intent.payment_failed"
)
