// Package main is the entry point for the wallet/ledger service.
// It loads configuration, connects PostgreSQL and Redis, and starts the
// HTTP server.
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"aurum/internal/config"
	"aurum/internal/repositories"
	"aurum/internal/routes"
)

func main() {
	config.LoadEnv()

	zapLogger, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	if err := repositories.InitDB(); err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		zapLogger.Fatal("failed to get database instance", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute))

	defer func() {
		if err := sqlDB.Close(); err != nil {
			zapLogger.Warn("failed to close database connection", zap.Error(err))
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				zapLogger.Warn("failed to close redis connection", zap.Error(err))
			}
		}
	}()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods: "GET,POST,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Posting endpoints are the expensive ones; rate limit them per client.
	app.Use("/api/wallets/:id/deposit", postingLimiter())
	app.Use("/api/wallets/:id/withdraw", postingLimiter())
	app.Use("/api/transfers", postingLimiter())

	routes.SetupRoutes(app, repositories.DB)

	zapLogger.Info("server starting", zap.String("port", config.GetEnv("PORT", "3000")))
	if err := app.Listen(":" + config.GetEnv("PORT", "3000")); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if config.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func postingLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.GetIntEnv("POSTING_RATE_LIMIT", 60),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		},
	})
}
