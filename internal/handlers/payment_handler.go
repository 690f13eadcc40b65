package handlers

import (
	"errors"
	"log/slog"

	"github.com/asifkarim/blooddrop-backend/internal/dto"
	"github.com/asifkarim/blooddrop-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateCheckout handles POST /create-payment-checkout.
func (h *PaymentHandler) CreateCheckout(c *fiber.Ctx) error {
	var in dto.CreateCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	url, err := h.payments.CreateCheckout(c.UserContext(), in.DonateAmount, in.DonorEmail, in.DonorName)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid donation amount",
			})
		}
		slog.Error("checkout creation failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create checkout session",
		})
	}

	return c.JSON(dto.CheckoutResponse{URL: url})
}

// SuccessPayment handles POST /success-payment?session_id=. Every outcome
// gets an explicit response: a fresh record, an already-recorded notice, or
// the provider's status for sessions that are not paid yet.
func (h *PaymentHandler) SuccessPayment(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "session_id is required",
		})
	}

	result, err := h.payments.Reconcile(c.UserContext(), sessionID)
	if err != nil {
		slog.Error("payment reconciliation failed", "error", err, "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to reconcile payment",
		})
	}

	if result.Created {
		return c.Status(fiber.StatusCreated).JSON(dto.ReconcileResponse{
			Recorded:      true,
			PaymentStatus: result.PaymentStatus,
			Payment:       result.Payment,
		})
	}

	if result.Payment != nil {
		return c.JSON(dto.ReconcileResponse{
			AlreadyRecorded: true,
			PaymentStatus:   result.PaymentStatus,
			Payment:         result.Payment,
		})
	}

	return c.JSON(dto.ReconcileResponse{
		PaymentStatus: result.PaymentStatus,
	})
}
