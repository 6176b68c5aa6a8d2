package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greencart-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ConfirmPaid(ctx context.Context, orderID string, userID uint) error {
	args := m.Called(ctx, orderID, userID)
	return args.Error(0)
}

func (m *MockOrderService) DiscardFailed(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockGateway) SessionsByPaymentIntent(ctx context.Context, paymentIntentID string) ([]payment.CheckoutSession, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.CheckoutSession), args.Error(1)
}

func (m *MockGateway) VerifyWebhook(payload []byte, sigHeader string) (*payment.Event, error) {
	args := m.Called(payload, sigHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Event), args.Error(1)
}

func makeEvent(t *testing.T, eventType string, object interface{}) *payment.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	if err != nil {
		t.Fatal(err)
	}
	evt := &payment.Event{ID: "evt_1", Type: eventType}
	evt.Data.Object = raw
	return evt
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	rec := httptest.NewRecorder()
	h.WebhookHandler(rec, req)
	return rec
}

func TestWebhookHandler_InvalidSignature(t *testing.T) {
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	h := NewHandler(orders, gateway)

	gateway.On("VerifyWebhook", mock.Anything, mock.Anything).
		Return(nil, payment.ErrInvalidSignature).Once()

	rec := post(h, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orders.AssertNotCalled(t, "ConfirmPaid", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "DiscardFailed", mock.Anything, mock.Anything)
}

func TestWebhookHandler_CheckoutCompleted(t *testing.T) {
	t.Run("Confirms the order from session metadata", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventCheckoutCompleted, map[string]interface{}{
			"id":       "cs_1",
			"metadata": map[string]string{"orderId": "ord-1", "userId": "42"},
		})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		orders.On("ConfirmPaid", mock.Anything, "ord-1", uint(42)).Return(nil).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received":true}`, rec.Body.String())
		orders.AssertExpectations(t)
	})

	t.Run("Missing metadata is acknowledged without mutation", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventCheckoutCompleted, map[string]interface{}{
			"id": "cs_1",
		})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertNotCalled(t, "ConfirmPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Processing errors still get a 200", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventCheckoutCompleted, map[string]interface{}{
			"id":       "cs_1",
			"metadata": map[string]string{"orderId": "ord-1", "userId": "42"},
		})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		orders.On("ConfirmPaid", mock.Anything, "ord-1", uint(42)).
			Return(errors.New("db error")).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	})
}

func TestWebhookHandler_PaymentIntentSucceeded(t *testing.T) {
	t.Run("Looks up the session and confirms", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventPaymentSucceeded, map[string]interface{}{"id": "pi_1"})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		gateway.On("SessionsByPaymentIntent", mock.Anything, "pi_1").
			Return([]payment.CheckoutSession{
				{ID: "cs_1", Metadata: map[string]string{"orderId": "ord-1", "userId": "7"}},
			}, nil).Once()
		orders.On("ConfirmPaid", mock.Anything, "ord-1", uint(7)).Return(nil).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("No session found is acknowledged without mutation", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventPaymentSucceeded, map[string]interface{}{"id": "pi_1"})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		gateway.On("SessionsByPaymentIntent", mock.Anything, "pi_1").
			Return([]payment.CheckoutSession{}, nil).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertNotCalled(t, "ConfirmPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Session lookup failure is acknowledged", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventPaymentSucceeded, map[string]interface{}{"id": "pi_1"})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		gateway.On("SessionsByPaymentIntent", mock.Anything, "pi_1").
			Return(nil, errors.New("stripe is down")).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestWebhookHandler_PaymentIntentFailed(t *testing.T) {
	t.Run("Deletes the order behind the intent", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventPaymentFailed, map[string]interface{}{"id": "pi_1"})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		gateway.On("SessionsByPaymentIntent", mock.Anything, "pi_1").
			Return([]payment.CheckoutSession{
				{ID: "cs_1", Metadata: map[string]string{"orderId": "ord-1", "userId": "7"}},
			}, nil).Once()
		orders.On("DiscardFailed", mock.Anything, "ord-1").Return(nil).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertExpectations(t)
		orders.AssertNotCalled(t, "ConfirmPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing orderId metadata is acknowledged without deletion", func(t *testing.T) {
		orders := new(MockOrderService)
		gateway := new(MockGateway)
		h := NewHandler(orders, gateway)

		evt := makeEvent(t, payment.EventPaymentFailed, map[string]interface{}{"id": "pi_1"})

		gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()
		gateway.On("SessionsByPaymentIntent", mock.Anything, "pi_1").
			Return([]payment.CheckoutSession{{ID: "cs_1"}}, nil).Once()

		rec := post(h, `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertNotCalled(t, "DiscardFailed", mock.Anything, mock.Anything)
	})
}

func TestWebhookHandler_UnknownEvent(t *testing.T) {
	orders := new(MockOrderService)
	gateway := new(MockGateway)
	h := NewHandler(orders, gateway)

	evt := makeEvent(t, "invoice.created", map[string]interface{}{"id": "in_1"})

	gateway.On("VerifyWebhook", mock.Anything, mock.Anything).Return(evt, nil).Once()

	rec := post(h, `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	orders.AssertNotCalled(t, "ConfirmPaid", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "DiscardFailed", mock.Anything, mock.Anything)
}
