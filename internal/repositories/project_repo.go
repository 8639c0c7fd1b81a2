package repositories

import (
	"portfolio/internal/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	GetAll(filter models.ProjectFilter) ([]models.Project, error)
	GetByID(id string) (*models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	Delete(id string) error
}
