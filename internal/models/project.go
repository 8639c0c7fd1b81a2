package models

import "gorm.io/gorm"

// Project types distinguish development work from design work.
const (
	ProjectTypeDevelopment = "development"
	ProjectTypeDesign      = "design"
)

// Project represents a public portfolio entry.
type Project struct {
	ID           string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies" gorm:"serializer:json" validate:"required,min=1,dive,required"`
	ImageURL     string   `json:"imageUrl" validate:"required"`
	DemoURL      string   `json:"demoUrl,omitempty" validate:"omitempty"`
	CodeURL      string   `json:"codeUrl,omitempty" validate:"omitempty"`
	FigmaURL     string   `json:"figmaUrl,omitempty" validate:"omitempty"`
	ProjectType  string   `json:"projectType" gorm:"type:varchar(20);default:development" validate:"omitempty,oneof=development design"`
	Featured     bool     `json:"featured" gorm:"default:false"`
	// "order" is a reserved word in most SQL dialects, so the column is renamed.
	DisplayOrder int `json:"order" gorm:"column:display_order;default:0"`
	gorm.Model       // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProjectFilter narrows a project listing. Zero values mean "no filter";
// combined filters intersect.
type ProjectFilter struct {
	Type     string
	Featured *bool
}
