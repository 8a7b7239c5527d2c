package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aurum/internal/repositories/cache"
)

const idempotencyKeyTTL = 24 * time.Hour

// Idempotency guards posting endpoints against client retries. Requests
// must carry an Idempotency-Key header holding a UUID; a key that was
// already accepted is rejected with 409 so a retried deposit cannot post
// twice. Keys are reserved in Redis before the handler runs and released
// if the handler fails, since a failed posting may be retried.
func Idempotency(cacheSvc *cache.CacheService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("Idempotency-Key")
		if key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing Idempotency-Key header"})
		}
		if _, err := uuid.Parse(key); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Idempotency-Key must be a valid UUID"})
		}

		reserved, err := cacheSvc.ReserveIdempotencyKey(c.Context(), key, idempotencyKeyTTL)
		if err != nil {
			zap.L().Error("idempotency reservation failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "idempotency store unavailable"})
		}
		if !reserved {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "duplicate request"})
		}

		if err := c.Next(); err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			if releaseErr := cacheSvc.ReleaseIdempotencyKey(c.Context(), key); releaseErr != nil {
				zap.L().Warn("failed to release idempotency key", zap.String("key", key), zap.Error(releaseErr))
			}
			return err
		}
		return nil
	}
}
