package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"greencart-be/internal/logger"

	"go.uber.org/zap"
)

const (
	stripeBaseURL      = "https://api.stripe.com"
	currency           = "aud"
	signatureTolerance = 5 * time.Minute
)

type stripeGateway struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
	now           func() time.Time
}

// NewStripeGateway builds the hosted-checkout gateway. Empty keys are allowed
// at construction time; calls fail with ErrNotConfigured instead.
func NewStripeGateway(secretKey, webhookSecret string) Gateway {
	if secretKey == "" {
		logger.L().Warn("Stripe secret key is empty")
	}

	return &stripeGateway{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// ----------------- CreateCheckoutSession -----------------

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	if g.secretKey == "" {
		return nil, ErrNotConfigured
	}

	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "stripe"),
		zap.Int("line_items", len(params.LineItems)),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)

	for i, li := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		// Unit price carries the 2% tax, floored to whole minor units.
		unitAmount := int64(math.Floor((li.Price + li.Price*0.02) * 100))

		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][product_data][name]", li.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(unitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(li.Quantity))
	}

	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("creating checkout session")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("stripe error: %s", string(bodyBytes))
	}

	var session CheckoutSession
	if err := json.Unmarshal(bodyBytes, &session); err != nil {
		log.Error("failed decoding stripe response", zap.Error(err))
		return nil, err
	}

	log.Info("checkout session created", zap.String("session_id", session.ID))
	return &session, nil
}

// ----------------- SessionsByPaymentIntent -----------------

func (g *stripeGateway) SessionsByPaymentIntent(ctx context.Context, paymentIntentID string) ([]CheckoutSession, error) {
	if g.secretKey == "" {
		return nil, ErrNotConfigured
	}

	log := logger.FromCtx(ctx).With(zap.String("payment_intent", paymentIntentID))

	u := fmt.Sprintf("%s/v1/checkout/sessions?payment_intent=%s",
		g.baseURL, url.QueryEscape(paymentIntentID))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("stripe returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("stripe error: %s", string(bodyBytes))
	}

	var list struct {
		Data []CheckoutSession `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &list); err != nil {
		return nil, err
	}

	return list.Data, nil
}

// ----------------- VerifyWebhook -----------------

// VerifyWebhook checks the v1 signature scheme: HMAC-SHA256 over
// "<timestamp>.<payload>" with the shared webhook secret, carried in a header
// of the form "t=<unix>,v1=<hex>".
func (g *stripeGateway) VerifyWebhook(payload []byte, sigHeader string) (*Event, error) {
	if g.webhookSecret == "" {
		return nil, ErrNotConfigured
	}

	var (
		timestamp  string
		signatures []string
	)
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return nil, ErrInvalidSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if g.now().Sub(time.Unix(ts, 0)) > signatureTolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	valid := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	return &event, nil
}
