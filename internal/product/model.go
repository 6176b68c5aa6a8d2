package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID                uuid.UUID `json:"_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	OfferPrice        float64   `json:"offerPrice"`
	Image             []string  `json:"image"`
	Category          string    `json:"category"`
	InStock           bool      `json:"inStock"`
	Inventory         int       `json:"inventory"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	SoldCount         int       `json:"soldCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// EffectivePrice is the offer price when one is set, else the regular price.
func (p *Product) EffectivePrice() float64 {
	if p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.Price
}

// IsLowStock reports whether inventory has fallen to the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.Inventory <= p.LowStockThreshold
}
