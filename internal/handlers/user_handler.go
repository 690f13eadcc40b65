package handlers

import (
	"errors"
	"log/slog"
	"net/url"

	"github.com/asifkarim/blooddrop-backend/internal/dto"
	"github.com/asifkarim/blooddrop-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /users. The payload is an arbitrary profile object;
// role and status in it are ignored.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var profile map[string]interface{}
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	// Role and status are server-assigned, never taken from the payload.
	delete(profile, "role")
	delete(profile, "status")

	user, err := h.users.Register(profile)
	if err != nil {
		if errors.Is(err, services.ErrEmailRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email is required",
			})
		}
		slog.Error("user registration failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// List handles GET /users (admin only).
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		slog.Error("user listing failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list users",
		})
	}
	return c.JSON(users)
}

// GetByEmail handles GET /users/role/:email (public). An unknown email
// answers with a JSON null body, not an error.
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid email",
		})
	}

	user, err := h.users.GetByEmail(email)
	if err != nil {
		slog.Error("user lookup failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch user",
		})
	}
	if user == nil {
		return c.JSON(nil)
	}
	return c.JSON(user)
}

// UpdateStatus handles PATCH /update/user/status?email=&status= (admin only).
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	email := c.Query("email")
	status := c.Query("status")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	affected, err := h.users.UpdateStatus(email, status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUserStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid status",
			})
		}
		slog.Error("user status update failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user status",
		})
	}

	return c.JSON(dto.UpdateResult{MatchedCount: affected, ModifiedCount: affected})
}
