package order

import "errors"

var (
	ErrItemsRequired   = errors.New("cart items are required")
	ErrAddressRequired = errors.New("delivery address is required")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOutOfStock      = errors.New("product out of stock")

	ErrProductIDRequired = errors.New("product ID is required")
)
