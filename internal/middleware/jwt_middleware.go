package middleware

import (
	"errors"
	"log"
	"strings"

	"portfolio/internal/repositories"
	"portfolio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// A missing header and a failed token both come back as a plain 401; the
// response never says whether a signature or an expiry was at fault.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, no token",
			})
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, token failed",
			})
		}

		// Store the resolved subject for subsequent handlers
		c.Locals("user_id", userID)

		return c.Next()
	}
}

// AdminRequired resolves the authenticated user and rejects anyone whose
// admin flag is not set. Must be layered after AuthRequired.
func AdminRequired(userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		user, err := userRepo.GetByID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"success": false,
					"message": "User not found",
				})
			}
			log.Printf("Admin check failed for user %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Server error in admin authorization",
			})
		}

		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized as admin",
			})
		}

		return c.Next()
	}
}
