package middleware

import (
	"errors"
	"log/slog"

	"github.com/asifkarim/blooddrop-backend/internal/dto"
	"github.com/asifkarim/blooddrop-backend/internal/identity"
	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRoles permits the request only when the caller's stored role is in
// the allowed set. The role is re-read from the database on every call, so a
// role change takes effect on the caller's next request.
func RequireRoles(db *gorm.DB, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		email, err := identity.Email(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized access",
			})
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				slog.Error("role lookup failed", "error", err, "path", c.Path())
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Internal server error",
				})
			}
			return forbidden(c)
		}

		if _, ok := allowed[user.Role]; !ok {
			return forbidden(c)
		}
		return c.Next()
	}
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Forbidden access",
	})
}
