package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lapakku/initializers"
	"lapakku/models"
	"lapakku/utils"
)

// RequireAuth verifies the Bearer token and loads the calling user into
// c.Locals("user") as a models.UserResponse.
func RequireAuth(db *gorm.DB, config *initializers.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "authorization header required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "invalid authorization format",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ValidateToken(tokenString, config.JwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "invalid or expired token",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "user belonging to this token no longer exists",
			})
		}

		c.Locals("user", models.FilterUserRecord(&user))
		return c.Next()
	}
}
