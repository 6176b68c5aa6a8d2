package order

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusPacked     Status = "Packed"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
	StatusConfirmed  Status = "Confirmed"
)

type PaymentType string

const (
	PaymentCOD    PaymentType = "COD"
	PaymentOnline PaymentType = "Online"
)

// ProductSnapshot is the product as it was at order time. Later catalog edits
// must not alter historical orders, so nothing here references the products
// table after placement.
type ProductSnapshot struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Image      []string `json:"image"`
	OfferPrice float64  `json:"offerPrice"`
}

type OrderItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Status   string          `json:"status"`
}

// AddressSnapshot is copied from the submitted address at order time, with
// placeholder defaults for anything missing.
type AddressSnapshot struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Zipcode   string `json:"zipcode"`
}

type Order struct {
	ID          uuid.UUID       `json:"_id"`
	UserID      uint            `json:"user"`
	Items       []OrderItem     `json:"items"`
	Amount      float64         `json:"amount"`
	Address     AddressSnapshot `json:"address"`
	PaymentType PaymentType     `json:"paymentType"`
	Status      Status          `json:"status"`
	IsPaid      bool            `json:"isPaid"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
