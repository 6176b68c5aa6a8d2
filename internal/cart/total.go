package cart

import (
	"math"

	"greencart-be/internal/product"
)

// Total computes the monetary value of a cart against the given product list.
//
// Each entry pairs a product id with a quantity. The offer price wins over the
// regular price when set. Entries with a non-positive quantity or price
// contribute nothing, and ids absent from the product list are skipped rather
// than reported. The result is rounded to two decimal places.
func Total(items map[string]int, products []*product.Product) float64 {
	if len(items) == 0 || len(products) == 0 {
		return 0
	}

	byID := make(map[string]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	var total float64
	for id, qty := range items {
		p, ok := byID[id]
		if !ok || qty <= 0 {
			continue
		}

		price := p.EffectivePrice()
		if price <= 0 {
			continue
		}

		total += price * float64(qty)
	}

	return math.Round(total*100) / 100
}
