package repositories

import (
	"fmt"
	"portfolio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{
		db: db,
	}
}

// GetAll retrieves projects matching the filter, ordered for display.
func (r *GORMProjectRepository) GetAll(filter models.ProjectFilter) ([]models.Project, error) {
	query := r.db.Model(&models.Project{})
	if filter.Type != "" {
		query = query.Where("project_type = ?", filter.Type)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var projects []models.Project
	if err := query.Order("display_order asc, created_at desc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a single project by its ID from the database.
func (r *GORMProjectRepository) GetByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project by ID %s: %w", id, err)
	}
	return &project, nil
}

// Create creates a new project in the database.
func (r *GORMProjectRepository) Create(project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update updates an existing project in the database.
func (r *GORMProjectRepository) Update(project *models.Project) error {
	res := r.db.Save(project) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when no rows were
		// touched by an update, so we check RowsAffected.
		return fmt.Errorf("project with ID %s: %w", project.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a project by its ID from the database.
func (r *GORMProjectRepository) Delete(id string) error {
	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
