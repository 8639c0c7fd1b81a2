package repositories

import (
	"fmt"
	"sort"
	"sync"

	"portfolio/internal/models"

	"github.com/google/uuid"
)

// MockProjectRepository is an in-memory implementation of ProjectRepository.
type MockProjectRepository struct {
	projects map[string]models.Project
	mu       sync.RWMutex
}

// NewMockProjectRepository creates a new instance of MockProjectRepository.
func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		projects: make(map[string]models.Project),
	}
}

// GetAll returns projects matching the filter, ordered for display.
func (r *MockProjectRepository) GetAll(filter models.ProjectFilter) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projectList := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if filter.Type != "" && p.ProjectType != filter.Type {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		projectList = append(projectList, p)
	}
	sort.Slice(projectList, func(i, j int) bool {
		if projectList[i].DisplayOrder != projectList[j].DisplayOrder {
			return projectList[i].DisplayOrder < projectList[j].DisplayOrder
		}
		return projectList[i].CreatedAt.After(projectList[j].CreatedAt)
	})
	return projectList, nil
}

// GetByID returns a project by its ID.
func (r *MockProjectRepository) GetByID(id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
	}
	return &project, nil
}

// Create adds a new project.
func (r *MockProjectRepository) Create(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	r.projects[project.ID] = *project
	return nil
}

// Update modifies an existing project.
func (r *MockProjectRepository) Update(project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.projects[project.ID]
	if !ok {
		return fmt.Errorf("project with ID %s: %w", project.ID, ErrNotFound)
	}
	r.projects[project.ID] = *project
	return nil
}

// Delete removes a project by its ID.
func (r *MockProjectRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("project with ID %s: %w", id, ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}
