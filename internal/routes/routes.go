package routes

import (
	"time"

	"github.com/asifkarim/blooddrop-backend/internal/config"
	"github.com/asifkarim/blooddrop-backend/internal/handlers"
	"github.com/asifkarim/blooddrop-backend/internal/middleware"
	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	userHandler *handlers.UserHandler,
	requestHandler *handlers.RequestHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Liveness and health stay outside the rate limiter.
	app.Get("/", healthHandler.Live)
	app.Get("/health", healthHandler.Check)

	// 120 req/min per IP across the API.
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	auth := middleware.RequireAuth(cfg)
	adminOnly := middleware.RequireRoles(db, models.RoleAdmin)
	triage := middleware.RequireRoles(db, models.RoleAdmin, models.RoleVolunteer)

	// Users
	app.Post("/users", userHandler.Register)
	app.Get("/users", auth, adminOnly, userHandler.List)
	app.Get("/users/role/:email", userHandler.GetByEmail)
	app.Patch("/update/user/status", auth, adminOnly, userHandler.UpdateStatus)

	// Donation requests
	app.Post("/requests", auth, requestHandler.Create)
	app.Get("/my-request", auth, requestHandler.MyRequests)
	app.Get("/donation-requests", auth, triage, requestHandler.ListAll)
	app.Patch("/donation-requests/:id/status", auth, triage, requestHandler.UpdateStatus)
	app.Get("/search-requests", requestHandler.Search)

	// Payments
	app.Post("/create-payment-checkout", paymentHandler.CreateCheckout)
	app.Post("/success-payment", paymentHandler.SuccessPayment)
}
