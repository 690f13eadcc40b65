package middleware

import (
	"github.com/asifkarim/blooddrop-backend/internal/config"
	"github.com/asifkarim/blooddrop-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth verifies the Authorization bearer token against the identity
// provider's JWK Set and leaves the parsed token in c.Locals("user"). Issuer
// and audience are checked when configured; the email claim must be present
// since it is the caller identity everywhere downstream.
func RequireAuth(cfg *config.Config) fiber.Handler {
	unauthorized := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized access",
		})
	}

	return jwtware.New(jwtware.Config{
		JWKSetURLs: []string{cfg.IdentityJWKSURL},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok || token == nil {
				return unauthorized(c)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}

			if cfg.IdentityIssuer != "" {
				iss, err := claims.GetIssuer()
				if err != nil || iss != cfg.IdentityIssuer {
					return unauthorized(c)
				}
			}
			if cfg.IdentityAudience != "" {
				aud, err := claims.GetAudience()
				if err != nil || !containsAudience(aud, cfg.IdentityAudience) {
					return unauthorized(c)
				}
			}
			if email, _ := claims["email"].(string); email == "" {
				return unauthorized(c)
			}

			return c.Next()
		},
	})
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
