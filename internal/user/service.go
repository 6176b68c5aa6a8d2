package user

import (
	"context"
	"errors"
	"strings"

	"greencart-be/internal/logger"
	"greencart-be/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("all fields are required")
)

// Service defines account handling for storefront users and the seller login.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	SellerLogin(ctx context.Context, email, password string) (string, error)
}

type service struct {
	repo           Repository
	sellerEmail    string
	sellerPassword string
}

func NewService(repo Repository, sellerEmail, sellerPassword string) Service {
	return &service{
		repo:           repo,
		sellerEmail:    sellerEmail,
		sellerPassword: sellerPassword,
	}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		Name:      name,
		Email:     email,
		Password:  hash,
		CartItems: map[string]int{},
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(u.ID, utils.RoleUser, u.Email)
	if err != nil {
		return nil, "", err
	}

	logger.FromCtx(ctx).Info("user registered", zap.Uint("user_id", u.ID))
	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !CheckPasswordHash(password, u.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, utils.RoleUser, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// SellerLogin authenticates against the env-configured seller account. There is
// no seller row in the database; the role claim alone carries the privilege.
func (s *service) SellerLogin(ctx context.Context, email, password string) (string, error) {
	if s.sellerEmail == "" || s.sellerPassword == "" {
		return "", errors.New("seller account is not configured")
	}
	if email != s.sellerEmail || password != s.sellerPassword {
		return "", ErrInvalidCredentials
	}
	return GenerateJWT(0, utils.RoleSeller, email)
}
