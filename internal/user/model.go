package user

import "time"

type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string // bcrypt hash
	Phone     string
	CartItems map[string]int
	CreatedAt time.Time
}
