package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"greencart-be/internal/logger"
	"greencart-be/internal/payment"

	"go.uber.org/zap"
)

// OrderService is the slice of the order service the webhook needs.
type OrderService interface {
	ConfirmPaid(ctx context.Context, orderID string, userID uint) error
	DiscardFailed(ctx context.Context, orderID string) error
}

// Handler processes signed payment-provider callbacks. The order id travels
// only in session metadata; intent events need a secondary session lookup
// before any order can be touched.
type Handler struct {
	Orders  OrderService
	Gateway payment.Gateway
}

func NewHandler(orders OrderService, gateway payment.Gateway) *Handler {
	return &Handler{Orders: orders, Gateway: gateway}
}

type sessionObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

type intentObject struct {
	ID string `json:"id"`
}

// WebhookHandler is the actual route handler.
func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("handler", "webhook"))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	event, err := h.Gateway.VerifyWebhook(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Warn("webhook verification failed", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	log = log.With(zap.String("event_type", event.Type), zap.String("event_id", event.ID))

	switch event.Type {
	case payment.EventCheckoutCompleted:
		h.handleCheckoutCompleted(ctx, log, event)

	case payment.EventPaymentSucceeded:
		h.handleIntentOutcome(ctx, log, event, true)

	case payment.EventPaymentFailed:
		h.handleIntentOutcome(ctx, log, event, false)

	default:
		log.Debug("unhandled event type")
	}

	// The provider retries on non-2xx. Processing problems after a verified
	// signature are logged, not surfaced.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"received":true}`))
}

func (h *Handler) handleCheckoutCompleted(ctx context.Context, log *zap.Logger, event *payment.Event) {
	var session sessionObject
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		log.Warn("malformed session object", zap.Error(err))
		return
	}
	h.confirmFromMetadata(ctx, log, session.Metadata)
}

func (h *Handler) handleIntentOutcome(ctx context.Context, log *zap.Logger, event *payment.Event, succeeded bool) {
	var intent intentObject
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil || intent.ID == "" {
		log.Warn("malformed payment intent object", zap.Error(err))
		return
	}

	sessions, err := h.Gateway.SessionsByPaymentIntent(ctx, intent.ID)
	if err != nil {
		log.Error("session lookup failed", zap.String("payment_intent", intent.ID), zap.Error(err))
		return
	}
	if len(sessions) == 0 {
		log.Warn("no session for payment intent", zap.String("payment_intent", intent.ID))
		return
	}

	if succeeded {
		h.confirmFromMetadata(ctx, log, sessions[0].Metadata)
		return
	}

	orderID := sessions[0].Metadata["orderId"]
	if orderID == "" {
		log.Warn("missing orderId in session metadata")
		return
	}
	if err := h.Orders.DiscardFailed(ctx, orderID); err != nil {
		log.Error("failed to discard order", zap.String("order_id", orderID), zap.Error(err))
	}
}

func (h *Handler) confirmFromMetadata(ctx context.Context, log *zap.Logger, metadata map[string]string) {
	orderID := metadata["orderId"]
	userIDStr := metadata["userId"]
	if orderID == "" || userIDStr == "" {
		log.Warn("missing orderId or userId in session metadata")
		return
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		log.Warn("malformed userId in session metadata", zap.String("userId", userIDStr))
		return
	}

	if err := h.Orders.ConfirmPaid(ctx, orderID, uint(userID)); err != nil {
		log.Error("failed to confirm order", zap.String("order_id", orderID), zap.Error(err))
	}
}
