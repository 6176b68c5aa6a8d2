package address

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingFields  = errors.New("all fields are required")
	ErrInvalidZipcode = errors.New("invalid zipcode format")
)

type NewAddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// Service manages shipping addresses. Addresses are immutable once created;
// orders copy them at placement time, so edits are never needed retroactively.
type Service interface {
	Add(ctx context.Context, userID uint, input NewAddressInput) (*Address, error)
	List(ctx context.Context, userID uint) ([]*Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID uint, input NewAddressInput) (*Address, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Street == "" || input.City == "" || input.State == "" ||
		input.Zipcode == "" || input.Country == "" || input.Phone == "" {
		return nil, ErrMissingFields
	}

	zipcode, err := strconv.ParseInt(strings.TrimSpace(input.Zipcode), 10, 64)
	if err != nil {
		return nil, ErrInvalidZipcode
	}

	addr := &Address{
		ID:        uuid.New(),
		UserID:    userID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Zipcode:   zipcode,
		Country:   strings.TrimSpace(input.Country),
		Phone:     strings.TrimSpace(input.Phone),
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	return addr, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]*Address, error) {
	return s.repo.GetByUserID(ctx, userID)
}
