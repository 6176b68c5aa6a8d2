package product

import (
	"context"
	"database/sql"
	"encoding/json"

	"greencart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	SetStock(ctx context.Context, id uuid.UUID, inStock bool) error
	ReduceInventory(ctx context.Context, id uuid.UUID, quantity int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, description, price, offer_price, image, category,
	in_stock, inventory, low_stock_threshold, sold_count, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Create"),
		zap.String("name", p.Name),
	)

	imageJSON, err := json.Marshal(p.Image)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO products
			(id, name, description, price, offer_price, image, category,
			 in_stock, inventory, low_stock_threshold, sold_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, q,
		p.ID, p.Name, p.Description, p.Price, p.OfferPrice, imageJSON, p.Category,
		p.InStock, p.Inventory, p.LowStockThreshold, p.SoldCount,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("product query failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "List"),
	)

	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

func (r *repository) SetStock(ctx context.Context, id uuid.UUID, inStock bool) error {
	const q = `UPDATE products SET in_stock = $2, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id, inStock)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ReduceInventory decrements stock after a sale and keeps in_stock in step with
// the remaining count. Fails when fewer than quantity units remain.
func (r *repository) ReduceInventory(ctx context.Context, id uuid.UUID, quantity int) error {
	const q = `
		UPDATE products
		SET inventory  = inventory - $2,
		    sold_count = sold_count + $2,
		    in_stock   = (inventory - $2) > 0,
		    updated_at = NOW()
		WHERE id = $1 AND inventory >= $2
	`

	res, err := r.db.ExecContext(ctx, q, id, quantity)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p         Product
		imageJSON []byte
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OfferPrice, &imageJSON, &p.Category,
		&p.InStock, &p.Inventory, &p.LowStockThreshold, &p.SoldCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(imageJSON) > 0 {
		if err := json.Unmarshal(imageJSON, &p.Image); err != nil {
			return nil, err
		}
	}

	return &p, nil
}
