package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"aurum/internal/repositories/cache"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewHealthHandler(db *gorm.DB, cacheSvc *cache.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheSvc}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "database unavailable"})
	}
	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "cache unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
