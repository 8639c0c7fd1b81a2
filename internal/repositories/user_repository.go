package repositories

import "portfolio/internal/models"

// UserRepository defines the interface for user data access.
// Users are never hard-deleted through any exposed operation.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
}
