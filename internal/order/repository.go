package order

import (
	"context"
	"database/sql"
	"encoding/json"

	"greencart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// MarkPaid flips the order to paid/Confirmed. Returns false when no such
	// order exists; repeating the update on a paid order is not an error.
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
	// Delete removes the order. Deleting an absent order is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	GetByUserID(ctx context.Context, userID uint) ([]*Order, error)
	// GetAll returns every order that still has line items, newest first.
	GetAll(ctx context.Context) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, user_id, items, amount, address, payment_type, status, is_paid, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Create"),
		zap.Uint("user_id", o.UserID),
	)

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	addressJSON, err := json.Marshal(o.Address)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO orders
			(id, user_id, items, amount, address, payment_type, status, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, q,
		o.ID, o.UserID, itemsJSON, o.Amount, addressJSON,
		string(o.PaymentType), string(o.Status), o.IsPaid,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 LIMIT 1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("order query failed", zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *repository) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `
		UPDATE orders
		SET is_paid = true, status = 'Confirmed', updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		logger.FromCtx(ctx).Error("mark paid failed", zap.Error(err))
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM orders WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		logger.FromCtx(ctx).Error("delete failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]*Order, error) {
	const q = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryOrders(ctx, q, userID)
}

func (r *repository) GetAll(ctx context.Context) ([]*Order, error) {
	const q = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE jsonb_array_length(items) > 0
		ORDER BY created_at DESC
	`
	return r.queryOrders(ctx, q)
}

func (r *repository) queryOrders(ctx context.Context, q string, args ...interface{}) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("repo", "Order"))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, o)
	}

	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o           Order
		itemsJSON   []byte
		addressJSON []byte
	)

	err := row.Scan(
		&o.ID, &o.UserID, &itemsJSON, &o.Amount, &addressJSON,
		&o.PaymentType, &o.Status, &o.IsPaid, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, err
		}
	}
	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
			return nil, err
		}
	}

	return &o, nil
}
