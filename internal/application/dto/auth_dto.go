package dto

import "time"

// LoginRequest operator credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse operator account data (no password hash).
type UserResponse struct {
	ID          int64     `json:"id"`
	StoreID     int64     `json:"store_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse token plus user data.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
