package handlers

import (
	"log"

	"portfolio/internal/models"
	"portfolio/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for the contact form.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact routes with the Fiber app.
// Submission is public; reading the inbox is admin-only.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	contactRoutes := router.Group("/contact")
	contactRoutes.Post("/", h.HandleSubmit)
	contactRoutes.Get("/", auth, admin, h.HandleGetContacts)
}

// HandleSubmit validates and persists a contact message. Notification
// emails are sent after the save succeeds and cannot fail the request.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var contact models.Contact
	if err := c.BodyParser(&contact); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(contact); err != nil {
		return validationErrorResponse(c, err)
	}

	saved, err := h.service.Submit(&contact)
	if err != nil {
		log.Printf("Contact form submission error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error submitting contact form",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Contact form submitted successfully",
		"data":    saved,
	})
}

// HandleGetContacts lists all contact messages, newest first.
func (h *ContactHandler) HandleGetContacts(c *fiber.Ctx) error {
	contacts, err := h.service.ListAll()
	if err != nil {
		log.Printf("Get contacts error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error retrieving contacts",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(contacts),
		"data":    contacts,
	})
}
