package repositories

import (
	"portfolio/internal/models"
)

// ContactRepository defines the interface for contact message data access.
// Messages are append-only; there is no update or delete.
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetAll() ([]models.Contact, error)
}
