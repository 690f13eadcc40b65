package handlers

import (
	"errors"
	"log/slog"

	"github.com/asifkarim/blooddrop-backend/internal/dto"
	"github.com/asifkarim/blooddrop-backend/internal/identity"
	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/asifkarim/blooddrop-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create handles POST /requests. The requester is the verified caller, never
// a field of the payload.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	email, err := identity.Email(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized access",
		})
	}

	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	request, err := h.requests.Create(email, in)
	if err != nil {
		slog.Error("request creation failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// MyRequests handles GET /my-request?size=&page=. Absent or non-numeric
// parameters fall back to size=5, page=0.
func (h *RequestHandler) MyRequests(c *fiber.Ctx) error {
	email, err := identity.Email(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized access",
		})
	}

	size := c.QueryInt("size", services.DefaultPageSize)
	page := c.QueryInt("page", 0)

	requests, total, err := h.requests.ListMine(email, page, size)
	if err != nil {
		slog.Error("own-request listing failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list requests",
		})
	}

	return c.JSON(dto.MyRequestsResponse{Request: requests, TotalRequest: total})
}

// ListAll handles GET /donation-requests (admin or volunteer).
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	requests, err := h.requests.ListAll()
	if err != nil {
		slog.Error("request listing failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list requests",
		})
	}
	return c.JSON(requests)
}

// UpdateStatus handles PATCH /donation-requests/:id/status (admin or
// volunteer). An unknown id is a zero-row success; the counts in the
// response make that visible to the caller.
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request id",
		})
	}

	var in dto.UpdateRequestStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	affected, err := h.requests.UpdateStatus(id, models.RequestStatus(in.Status), in.Donor)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid status",
			})
		}
		slog.Error("request status update failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update status",
		})
	}

	return c.JSON(dto.UpdateResult{MatchedCount: affected, ModifiedCount: affected})
}

// Search handles GET /search-requests (public).
func (h *RequestHandler) Search(c *fiber.Ctx) error {
	filters := services.SearchFilters{
		BloodGroup: c.Query("bloodGroup"),
		District:   c.Query("district"),
		Upazila:    c.Query("upazila"),
	}

	requests, err := h.requests.Search(filters)
	if err != nil {
		slog.Error("request search failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search requests",
		})
	}
	return c.JSON(requests)
}
