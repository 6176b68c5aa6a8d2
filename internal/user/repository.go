package user

import (
	"context"
	"database/sql"
	"encoding/json"

	"greencart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)

	GetCartItems(ctx context.Context, userID uint) (map[string]int, error)
	UpdateCartItems(ctx context.Context, userID uint, items map[string]int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "Create"),
		zap.String("email", u.Email),
	)

	if u.CartItems == nil {
		u.CartItems = map[string]int{}
	}
	cartJSON, err := json.Marshal(u.CartItems)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO users (name, email, password_hash, phone, cart_items)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, q, u.Name, u.Email, u.Password, u.Phone, cartJSON).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEmailExists
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
		SELECT id, name, email, password_hash, phone, cart_items, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	return r.scanUser(ctx, q, email)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*User, error) {
	const q = `
		SELECT id, name, email, password_hash, phone, cart_items, created_at
		FROM users
		WHERE id = $1
		LIMIT 1
	`
	return r.scanUser(ctx, q, id)
}

func (r *repository) scanUser(ctx context.Context, q string, arg interface{}) (*User, error) {
	var (
		u        User
		cartJSON []byte
	)

	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &cartJSON, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("user query failed", zap.Error(err))
		return nil, err
	}

	u.CartItems = map[string]int{}
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &u.CartItems); err != nil {
			return nil, err
		}
	}

	return &u, nil
}

func (r *repository) GetCartItems(ctx context.Context, userID uint) (map[string]int, error) {
	const q = `SELECT cart_items FROM users WHERE id = $1 LIMIT 1`

	var cartJSON []byte
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&cartJSON)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	items := map[string]int{}
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *repository) UpdateCartItems(ctx context.Context, userID uint, items map[string]int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "UpdateCartItems"),
		zap.Uint("user_id", userID),
	)

	if items == nil {
		items = map[string]int{}
	}
	cartJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}

	const q = `UPDATE users SET cart_items = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, userID, cartJSON)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}
