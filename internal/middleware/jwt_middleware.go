package middleware

import (
	"log"
	"strings"

	"kanban/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid access token.
// Browsers send it as the accessToken cookie; other clients may use a
// Bearer header instead.
func AuthRequired(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("accessToken")

		if tokenString == "" {
			authHeader := c.Get("Authorization")
			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: token not found",
			})
		}

		claims, err := userService.ValidateAccessToken(tokenString)
		if err != nil {
			log.Printf("Access token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("user_id", claims["id"])
		c.Locals("email", claims["email"])

		return c.Next()
	}
}
