// Package middleware provides HTTP middleware for the fiber app. Token
// issuance is not this service's job; Auth only verifies bearer tokens
// minted by the identity service and exposes their claims to handlers.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"aurum/internal/config"
	"aurum/internal/models"
)

// Auth validates the Authorization bearer token and stores the parsed
// claims in the request context under "claims".
func Auth() fiber.Handler {
	secret := []byte(config.GetEnv("JWT_SECRET", "aurum"))

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &models.APIClaims{}, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			zap.L().Debug("token rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		claims, ok := token.Claims.(*models.APIClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
		}

		c.Locals("claims", claims)
		c.Locals("customerID", claims.CustomerID)
		return c.Next()
	}
}
