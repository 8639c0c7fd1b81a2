package services

import (
	"portfolio/internal/models"
	"portfolio/internal/repositories"
)

// ProjectService handles business logic related to portfolio projects.
type ProjectService struct {
	repo repositories.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// GetAllProjects retrieves projects matching the filter.
func (s *ProjectService) GetAllProjects(filter models.ProjectFilter) ([]models.Project, error) {
	return s.repo.GetAll(filter)
}

// GetProjectByID retrieves a single project by its ID.
func (s *ProjectService) GetProjectByID(id string) (*models.Project, error) {
	return s.repo.GetByID(id)
}

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(project *models.Project) error {
	if project.ProjectType == "" {
		project.ProjectType = models.ProjectTypeDevelopment
	}
	return s.repo.Create(project)
}

// UpdateProject updates an existing project.
func (s *ProjectService) UpdateProject(project *models.Project) error {
	return s.repo.Update(project)
}

// DeleteProject deletes a project by its ID.
func (s *ProjectService) DeleteProject(id string) error {
	return s.repo.Delete(id)
}
