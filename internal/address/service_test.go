package address

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Address), args.Error(1)
}

func validInput() NewAddressInput {
	return NewAddressInput{
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@example.com",
		Street:    "1 Garden St",
		City:      "Sydney",
		State:     "NSW",
		Zipcode:   "2000",
		Country:   "Australia",
		Phone:     "0400000000",
	}
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	userID := uint(1)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *Address) bool {
			return a.UserID == userID && a.Zipcode == int64(2000) && a.City == "Sydney"
		})).Return(nil).Once()

		addr, err := svc.Add(ctx, userID, validInput())

		require.NoError(t, err)
		assert.Equal(t, int64(2000), addr.Zipcode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Trims whitespace", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		in := validInput()
		in.City = "  Sydney  "
		in.Zipcode = " 2000 "

		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *Address) bool {
			return a.City == "Sydney" && a.Zipcode == int64(2000)
		})).Return(nil).Once()

		_, err := svc.Add(ctx, userID, in)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Missing field", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		in := validInput()
		in.Street = ""

		_, err := svc.Add(ctx, userID, in)

		assert.Equal(t, ErrMissingFields, err)
	})

	t.Run("Error - Non-numeric zipcode", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		in := validInput()
		in.Zipcode = "ABC 123"

		_, err := svc.Add(ctx, userID, in)

		assert.Equal(t, ErrInvalidZipcode, err)
	})

	t.Run("Error - Repository failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		dbErr := errors.New("db error")

		mockRepo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		_, err := svc.Add(ctx, userID, validInput())

		assert.Equal(t, dbErr, err)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := []*Address{{City: "Sydney"}}

		mockRepo.On("GetByUserID", ctx, uint(1)).Return(expected, nil).Once()

		addrs, err := svc.List(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, expected, addrs)
	})
}
