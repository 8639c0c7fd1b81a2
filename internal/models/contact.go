package models

import "gorm.io/gorm"

// Contact represents an inbound inquiry from the contact form.
// Messages are written once and read back by an admin; they are never
// updated and no delete is exposed.
type Contact struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject" validate:"required"`
	Message    string `json:"message" validate:"required"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
