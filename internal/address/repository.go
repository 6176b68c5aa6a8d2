package address

import (
	"context"
	"database/sql"

	"greencart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, addr *Address) error
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.Uint("user_id", addr.UserID),
	)

	const q = `
		INSERT INTO addresses
			(id, user_id, first_name, last_name, email,
			 street, city, state, zipcode, country, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, q,
		addr.ID, addr.UserID, addr.FirstName, addr.LastName, addr.Email,
		addr.Street, addr.City, addr.State, addr.Zipcode, addr.Country, addr.Phone,
	).Scan(&addr.CreatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.Uint("user_id", userID),
	)

	const q = `
		SELECT
			id, user_id, first_name, last_name, email,
			street, city, state, zipcode, country, phone, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.Email,
			&a.Street, &a.City, &a.State, &a.Zipcode, &a.Country, &a.Phone, &a.CreatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}
