package cart

import (
	"context"
	"errors"

	"greencart-be/internal/product"
	"greencart-be/internal/user"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// Service owns the per-user cart mapping persisted on the user record.
type Service interface {
	Get(ctx context.Context, userID uint) (map[string]int, error)
	Add(ctx context.Context, userID uint, productID string) error
	Update(ctx context.Context, userID uint, productID string, quantity int) error
	Remove(ctx context.Context, userID uint, productID string) error
	Replace(ctx context.Context, userID uint, items map[string]int) error
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	users    user.Repository
	products product.Repository
}

func NewService(users user.Repository, products product.Repository) Service {
	return &service{users: users, products: products}
}

func (s *service) Get(ctx context.Context, userID uint) (map[string]int, error) {
	return s.users.GetCartItems(ctx, userID)
}

// Add puts one more unit of the product in the cart, validating that the
// product exists and is marked in stock.
func (s *service) Add(ctx context.Context, userID uint, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return ErrProductNotFound
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	if !p.InStock {
		return ErrOutOfStock
	}

	items, err := s.users.GetCartItems(ctx, userID)
	if err != nil {
		return err
	}

	items[productID]++
	return s.users.UpdateCartItems(ctx, userID, items)
}

// Update sets the quantity for a product; zero or negative removes the entry.
func (s *service) Update(ctx context.Context, userID uint, productID string, quantity int) error {
	items, err := s.users.GetCartItems(ctx, userID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		delete(items, productID)
	} else {
		items[productID] = quantity
	}

	return s.users.UpdateCartItems(ctx, userID, items)
}

func (s *service) Remove(ctx context.Context, userID uint, productID string) error {
	return s.Update(ctx, userID, productID, 0)
}

// Replace swaps the whole mapping, dropping non-positive quantities.
func (s *service) Replace(ctx context.Context, userID uint, items map[string]int) error {
	clean := make(map[string]int, len(items))
	for id, qty := range items {
		if qty > 0 {
			clean[id] = qty
		}
	}
	return s.users.UpdateCartItems(ctx, userID, clean)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.users.UpdateCartItems(ctx, userID, map[string]int{})
}
