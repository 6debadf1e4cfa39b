package entity

import "time"

// User is an operator account. The store and warehouse assignment becomes the
// actor context carried in the JWT.
type User struct {
	ID           int64
	StoreID      int64
	WarehouseID  int64
	Email        string
	PasswordHash string
	Name         string
	Status       string // "active" or anything else (disabled)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
