package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) SetStock(ctx context.Context, id uuid.UUID, inStock bool) error {
	args := m.Called(ctx, id, inStock)
	return args.Error(0)
}

func (m *MockRepository) ReduceInventory(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// MockCache is a mock implementation of the Cache interface
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func validInput() NewProductInput {
	return NewProductInput{
		Name:        "Organic Apples",
		Description: "Crisp and sweet",
		Category:    "Fruits",
		Price:       10,
		OfferPrice:  8,
		Image:       []string{"apples.jpg"},
	}
}

func TestService_AddProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Name == "Organic Apples" && p.InStock && p.ID != uuid.Nil
		})).Return(nil).Once()

		p, err := svc.AddProduct(ctx, validInput())

		assert.NoError(t, err)
		assert.True(t, p.InStock)
		assert.Equal(t, 8.0, p.EffectivePrice())
		mockRepo.AssertExpectations(t)
	})

	t.Run("Trims whitespace", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		in := validInput()
		in.Name = "  Organic Apples  "

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Name == "Organic Apples"
		})).Return(nil).Once()

		_, err := svc.AddProduct(ctx, in)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)

		in := validInput()
		in.Name = "   "

		_, err := svc.AddProduct(ctx, in)

		assert.Equal(t, ErrMissingFields, err)
	})

	t.Run("Error - No images", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)

		in := validInput()
		in.Image = nil

		_, err := svc.AddProduct(ctx, in)

		assert.Equal(t, ErrImageRequired, err)
	})

	t.Run("Error - Invalid price", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)

		in := validInput()
		in.OfferPrice = 0

		_, err := svc.AddProduct(ctx, in)

		assert.Equal(t, ErrInvalidPrice, err)
	})

	t.Run("Invalidates the list cache", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		svc := NewService(mockRepo, mockCache)

		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockCache.On("Delete", ctx, listCacheKey).Return(nil).Once()

		_, err := svc.AddProduct(ctx, validInput())

		assert.NoError(t, err)
		mockCache.AssertExpectations(t)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache miss falls through to the repository", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		svc := NewService(mockRepo, mockCache)

		expected := []*Product{{ID: uuid.New(), Name: "Apples"}}

		mockCache.On("Get", ctx, listCacheKey).Return(nil, errors.New("redis: nil")).Once()
		mockRepo.On("List", ctx).Return(expected, nil).Once()
		mockCache.On("Set", ctx, listCacheKey, expected).Return(nil).Once()

		products, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, products)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Cache hit skips the repository", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		svc := NewService(mockRepo, mockCache)

		cached := []*Product{{ID: uuid.New(), Name: "Apples"}}
		data, err := json.Marshal(cached)
		require.NoError(t, err)

		mockCache.On("Get", ctx, listCacheKey).Return(data, nil).Once()

		products, err := svc.List(ctx)

		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Apples", products[0].Name)
		mockRepo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("Nil cache is fine", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("List", ctx).Return([]*Product{}, nil).Once()

		_, err := svc.List(ctx)

		assert.NoError(t, err)
	})

	t.Run("Cache set failure does not fail the read", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		svc := NewService(mockRepo, mockCache)

		expected := []*Product{{ID: uuid.New()}}

		mockCache.On("Get", ctx, listCacheKey).Return(nil, errors.New("redis: nil")).Once()
		mockRepo.On("List", ctx).Return(expected, nil).Once()
		mockCache.On("Set", ctx, listCacheKey, expected).Return(errors.New("redis down")).Once()

		products, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, products)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("GetByID", ctx, id).Return(&Product{ID: id}, nil).Once()

		p, err := svc.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, p.ID)
	})

	t.Run("Error - Not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := svc.GetByID(ctx, id)

		assert.Equal(t, ErrProductNotFound, err)
	})
}

func TestService_SetStock(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success invalidates cache", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		svc := NewService(mockRepo, mockCache)

		mockRepo.On("SetStock", ctx, id, false).Return(nil).Once()
		mockCache.On("Delete", ctx, listCacheKey).Return(nil).Once()

		err := svc.SetStock(ctx, id, false)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Error - Not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("SetStock", ctx, id, true).Return(ErrProductNotFound).Once()

		err := svc.SetStock(ctx, id, true)

		assert.Equal(t, ErrProductNotFound, err)
	})
}

func TestService_ReduceInventory(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Non-positive quantity is a no-op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		assert.NoError(t, svc.ReduceInventory(ctx, id, 0))
		assert.NoError(t, svc.ReduceInventory(ctx, id, -2))
		mockRepo.AssertNotCalled(t, "ReduceInventory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Insufficient stock", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("ReduceInventory", ctx, id, 5).Return(ErrInsufficientStock).Once()

		err := svc.ReduceInventory(ctx, id, 5)

		assert.Equal(t, ErrInsufficientStock, err)
	})
}

func TestProduct_EffectivePrice(t *testing.T) {
	assert.Equal(t, 8.0, (&Product{Price: 10, OfferPrice: 8}).EffectivePrice())
	assert.Equal(t, 10.0, (&Product{Price: 10}).EffectivePrice())
}

func TestProduct_IsLowStock(t *testing.T) {
	assert.True(t, (&Product{Inventory: 3, LowStockThreshold: 5}).IsLowStock())
	assert.False(t, (&Product{Inventory: 10, LowStockThreshold: 5}).IsLowStock())
}
