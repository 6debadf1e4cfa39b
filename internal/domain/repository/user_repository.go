package repository

import "github.com/santoko/kasir-api/internal/domain/entity"

// UserRepository is the operator account port.
type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	Create(user *entity.User) error // assigns user.ID
}
