package order

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"greencart-be/internal/events"
	"greencart-be/internal/logger"
	"greencart-be/internal/payment"
	"greencart-be/internal/product"
	"greencart-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Zipcode   string `json:"zipcode"`
}

type PlaceOrderInput struct {
	Items   []ItemInput   `json:"items"`
	Address *AddressInput `json:"address"`
	// TotalAmount is the client-computed total. When set it is persisted as-is
	// for the cash path; the server computes its own figure but does not
	// reject a mismatch.
	TotalAmount float64 `json:"totalAmount"`
}

// CartClearer empties a user's persisted cart after a successful order.
type CartClearer interface {
	Clear(ctx context.Context, userID uint) error
}

type Service interface {
	PlaceCOD(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error)
	// PlaceOnline creates a pending order plus a hosted checkout session and
	// returns the redirect URL. The order stays unpaid until the webhook lands.
	PlaceOnline(ctx context.Context, userID uint, origin string, in PlaceOrderInput) (string, error)
	// ConfirmPaid marks the order paid/Confirmed and clears the payer's cart.
	// Unknown or already-confirmed orders are tolerated, never an error.
	ConfirmPaid(ctx context.Context, orderID string, userID uint) error
	// DiscardFailed deletes the order after a failed payment attempt.
	DiscardFailed(ctx context.Context, orderID string) error
	UserOrders(ctx context.Context, userID uint) ([]*Order, error)
	AllOrders(ctx context.Context) ([]*Order, error)
}

type service struct {
	repo      Repository
	products  product.Repository
	users     user.Repository
	carts     CartClearer
	gateway   payment.Gateway
	publisher events.Publisher
}

func NewService(
	repo Repository,
	products product.Repository,
	users user.Repository,
	carts CartClearer,
	gateway payment.Gateway,
	publisher events.Publisher,
) Service {
	return &service{
		repo:      repo,
		products:  products,
		users:     users,
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
	}
}

// resolvedItem pairs a looked-up product with its checkout quantity and the
// price that will be charged for it.
type resolvedItem struct {
	product  *product.Product
	quantity int
	price    float64
}

// resolveItems validates every line against the catalog before anything is
// written. checkStock enforces the in-stock flag.
func (s *service) resolveItems(ctx context.Context, items []ItemInput, checkStock bool) ([]resolvedItem, error) {
	resolved := make([]resolvedItem, 0, len(items))

	for i, it := range items {
		if it.Product == "" {
			return nil, fmt.Errorf("item %d: %w", i+1, ErrProductIDRequired)
		}

		id, err := uuid.Parse(it.Product)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", product.ErrProductNotFound, it.Product)
		}

		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", product.ErrProductNotFound, it.Product)
		}

		if checkStock && !p.InStock {
			return nil, fmt.Errorf("%w: %q", ErrOutOfStock, p.Name)
		}

		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}

		resolved = append(resolved, resolvedItem{
			product:  p,
			quantity: qty,
			price:    p.EffectivePrice(),
		})
	}

	return resolved, nil
}

func snapshotItems(resolved []resolvedItem) []OrderItem {
	items := make([]OrderItem, 0, len(resolved))
	for _, ri := range resolved {
		items = append(items, OrderItem{
			Product: ProductSnapshot{
				ID:         ri.product.ID.String(),
				Name:       ri.product.Name,
				Category:   ri.product.Category,
				Image:      ri.product.Image,
				OfferPrice: ri.price,
			},
			Quantity: ri.quantity,
			Status:   string(StatusProcessing),
		})
	}
	return items
}

func snapshotAddress(in *AddressInput) AddressSnapshot {
	snap := AddressSnapshot{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Country:   in.Country,
		Zipcode:   in.Zipcode,
	}
	if snap.FirstName == "" {
		snap.FirstName = "N/A"
	}
	if snap.Phone == "" {
		snap.Phone = "N/A"
	}
	if snap.Street == "" {
		snap.Street = "Address not provided"
	}
	if snap.City == "" {
		snap.City = "City not provided"
	}
	if snap.State == "" {
		snap.State = "State not provided"
	}
	if snap.Country == "" {
		snap.Country = "Country not provided"
	}
	if snap.Zipcode == "" {
		snap.Zipcode = "N/A"
	}
	return snap
}

func (s *service) PlaceCOD(ctx context.Context, userID uint, in PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceCOD"),
		zap.Uint("user_id", userID),
		zap.Int("item_count", len(in.Items)),
	)

	if len(in.Items) == 0 {
		return nil, ErrItemsRequired
	}
	if in.Address == nil {
		return nil, ErrAddressRequired
	}

	resolved, err := s.resolveItems(ctx, in.Items, true)
	if err != nil {
		log.Warn("item validation failed", zap.Error(err))
		return nil, err
	}

	var calculated float64
	for _, ri := range resolved {
		calculated += ri.price * float64(ri.quantity)
	}

	// The client total wins when supplied; the recomputed figure is only a
	// fallback. See DESIGN.md on this trust gap.
	amount := in.TotalAmount
	if amount <= 0 {
		amount = calculated
	}

	o := &Order{
		ID:          uuid.New(),
		UserID:      userID,
		Items:       snapshotItems(resolved),
		Amount:      amount,
		Address:     snapshotAddress(in.Address),
		PaymentType: PaymentCOD,
		Status:      StatusProcessing,
		IsPaid:      false,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Error("failed to clear cart after order", zap.Error(err))
	}

	s.publish(ctx, events.OrderEvent{
		Type:       events.OrderPlaced,
		OrderID:    o.ID.String(),
		UserID:     userID,
		Amount:     o.Amount,
		OccurredAt: time.Now(),
	})

	log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.Float64("amount", o.Amount),
	)

	return o, nil
}

func (s *service) PlaceOnline(ctx context.Context, userID uint, origin string, in PlaceOrderInput) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOnline"),
		zap.Uint("user_id", userID),
		zap.Int("item_count", len(in.Items)),
	)

	if in.Address == nil {
		return "", ErrAddressRequired
	}
	if len(in.Items) == 0 {
		return "", ErrItemsRequired
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", user.ErrUserNotFound
	}

	resolved, err := s.resolveItems(ctx, in.Items, true)
	if err != nil {
		log.Warn("item validation failed", zap.Error(err))
		return "", err
	}

	var subtotal float64
	lineItems := make([]payment.LineItem, 0, len(resolved))
	for _, ri := range resolved {
		subtotal += ri.price * float64(ri.quantity)
		lineItems = append(lineItems, payment.LineItem{
			Name:     ri.product.Name,
			Price:    ri.price,
			Quantity: ri.quantity,
		})
	}

	// 2% tax, floored. The cart total rounds instead; the two paths disagree
	// on purpose, totals are observable behavior.
	tax := math.Floor(subtotal * 0.02)
	finalAmount := subtotal + tax

	o := &Order{
		ID:          uuid.New(),
		UserID:      userID,
		Items:       snapshotItems(resolved),
		Amount:      finalAmount,
		Address:     snapshotAddress(in.Address),
		PaymentType: PaymentOnline,
		Status:      StatusProcessing,
		IsPaid:      false,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return "", err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutParams{
		SuccessURL: origin + "/loader?next=my-orders&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/cart",
		LineItems:  lineItems,
		Metadata: map[string]string{
			"orderId": o.ID.String(),
			"userId":  strconv.FormatUint(uint64(userID), 10),
		},
	})
	if err != nil {
		log.Error("failed to create checkout session", zap.Error(err))
		return "", err
	}

	s.publish(ctx, events.OrderEvent{
		Type:       events.OrderPlaced,
		OrderID:    o.ID.String(),
		UserID:     userID,
		Amount:     finalAmount,
		OccurredAt: time.Now(),
	})

	log.Info("online order placed, awaiting payment",
		zap.String("order_id", o.ID.String()),
		zap.String("session_id", session.ID),
		zap.Float64("amount", finalAmount),
	)

	return session.URL, nil
}

func (s *service) ConfirmPaid(ctx context.Context, orderID string, userID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ConfirmPaid"),
		zap.String("order_id", orderID),
		zap.Uint("user_id", userID),
	)

	id, err := uuid.Parse(orderID)
	if err != nil {
		log.Warn("malformed order id in payment metadata")
		return nil
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		log.Warn("order not found for payment confirmation")
		return nil
	}

	if _, err := s.repo.MarkPaid(ctx, id); err != nil {
		return err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Error("failed to clear cart after payment", zap.Error(err))
	}

	s.publish(ctx, events.OrderEvent{
		Type:       events.OrderPaid,
		OrderID:    orderID,
		UserID:     userID,
		Amount:     o.Amount,
		OccurredAt: time.Now(),
	})

	log.Info("order confirmed as paid")
	return nil
}

func (s *service) DiscardFailed(ctx context.Context, orderID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DiscardFailed"),
		zap.String("order_id", orderID),
	)

	id, err := uuid.Parse(orderID)
	if err != nil {
		log.Warn("malformed order id in payment metadata")
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.OrderEvent{
		Type:       events.OrderFailed,
		OrderID:    orderID,
		OccurredAt: time.Now(),
	})

	log.Info("failed order deleted")
	return nil
}

func (s *service) UserOrders(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) AllOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) publish(ctx context.Context, evt events.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("type", evt.Type),
			zap.Error(err),
		)
	}
}
