package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID        uuid.UUID `json:"_id"`
	UserID    uint      `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zipcode   int64     `json:"zipcode"`
	Country   string    `json:"country"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}
