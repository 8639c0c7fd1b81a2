package handlers

import (
	"errors"
	"log"
	"strconv"

	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	service  *services.ProjectService
	validate *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the project routes with the Fiber app.
// Reads are public; mutations require authentication.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Get("/", h.HandleGetProjects)
	projectRoutes.Post("/", auth, h.HandleCreateProject)
	projectRoutes.Get("/:id", h.HandleGetProjectByID)
	projectRoutes.Put("/:id", auth, h.HandleUpdateProject)
	projectRoutes.Delete("/:id", auth, h.HandleDeleteProject)
}

// HandleGetProjects lists projects, optionally filtered by ?type= and
// ?featured=. Combined filters intersect.
func (h *ProjectHandler) HandleGetProjects(c *fiber.Ctx) error {
	var filter models.ProjectFilter

	if projectType := c.Query("type"); projectType != "" {
		if projectType != models.ProjectTypeDevelopment && projectType != models.ProjectTypeDesign {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid project type filter, must be 'development' or 'design'",
			})
		}
		filter.Type = projectType
	}

	if featured := c.Query("featured"); featured != "" {
		value, err := strconv.ParseBool(featured)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid featured filter, must be a boolean",
			})
		}
		filter.Featured = &value
	}

	projects, err := h.service.GetAllProjects(filter)
	if err != nil {
		log.Printf("Error getting projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve projects",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(projects),
		"data":    projects,
	})
}

// HandleGetProjectByID retrieves a single project by its ID.
func (h *ProjectHandler) HandleGetProjectByID(c *fiber.Ctx) error {
	projectID := c.Params("id")

	project, err := h.service.GetProjectByID(projectID)
	if err != nil {
		log.Printf("Error getting project by ID %s: %v", projectID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve project",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    project,
	})
}

// HandleCreateProject creates a new project.
func (h *ProjectHandler) HandleCreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		log.Printf("Error parsing project request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(project); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateProject(&project); err != nil {
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not create project",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Project created successfully",
		"data":    project,
	})
}

// HandleUpdateProject applies a partial update to an existing project.
// Fields absent from the body keep their stored values.
func (h *ProjectHandler) HandleUpdateProject(c *fiber.Ctx) error {
	projectID := c.Params("id")

	project, err := h.service.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Project not found",
			})
		}
		log.Printf("Error loading project %s for update: %v", projectID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not update project",
		})
	}

	// Parse onto the loaded record so omitted fields are preserved.
	if err := c.BodyParser(project); err != nil {
		log.Printf("Error parsing project update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	project.ID = projectID // The path, not the body, names the record

	if err := h.validate.Struct(project); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateProject(project); err != nil {
		log.Printf("Error updating project %s: %v", projectID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not update project",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project updated successfully",
		"data":    project,
	})
}

// HandleDeleteProject deletes a project by its ID.
func (h *ProjectHandler) HandleDeleteProject(c *fiber.Ctx) error {
	projectID := c.Params("id")

	if err := h.service.DeleteProject(projectID); err != nil {
		log.Printf("Error deleting project %s: %v", projectID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not delete project",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project deleted successfully",
	})
}
