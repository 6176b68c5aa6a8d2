package product

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"greencart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrMissingFields     = errors.New("all fields are required")
	ErrImageRequired     = errors.New("at least one image is required")
	ErrInvalidPrice      = errors.New("invalid price values")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const listCacheKey = "products:list"

// Cache is the subset of the redis cache the catalog needs. A nil Cache
// disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type NewProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	OfferPrice  float64  `json:"offerPrice"`
	Image       []string `json:"image"`
}

type Service interface {
	AddProduct(ctx context.Context, input NewProductInput) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	SetStock(ctx context.Context, id uuid.UUID, inStock bool) error
	ReduceInventory(ctx context.Context, id uuid.UUID, quantity int) error
}

type service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) AddProduct(ctx context.Context, input NewProductInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	category := strings.TrimSpace(input.Category)

	if name == "" || description == "" || category == "" {
		return nil, ErrMissingFields
	}
	if len(input.Image) == 0 {
		return nil, ErrImageRequired
	}
	if input.Price <= 0 || input.OfferPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Category:    category,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
		Image:       input.Image,
		InStock:     true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	logger.FromCtx(ctx).Info("product added", zap.String("product_id", p.ID.String()))

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, listCacheKey); err == nil {
			var cached []*Product
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, products); err != nil {
			logger.FromCtx(ctx).Warn("product list cache set failed", zap.Error(err))
		}
	}

	return products, nil
}

func (s *service) SetStock(ctx context.Context, id uuid.UUID, inStock bool) error {
	if err := s.repo.SetStock(ctx, id, inStock); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *service) ReduceInventory(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	if err := s.repo.ReduceInventory(ctx, id, quantity); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		logger.FromCtx(ctx).Warn("product list cache invalidation failed", zap.Error(err))
	}
}
