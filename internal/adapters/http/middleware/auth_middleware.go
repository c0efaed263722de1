package middleware

import (
	"strings"

	"tdac-backend/internal/config"
	"tdac-backend/internal/pkg/jwt"
	"tdac-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware guards admin routes. The token is accepted from the
// Authorization header only.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// Set admin info in context
		c.Locals("adminID", claims.AdminID)
		c.Locals("adminEmail", claims.Email)

		return c.Next()
	}
}
