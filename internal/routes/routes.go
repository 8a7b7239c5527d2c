// Package routes defines the API routing configuration.
// It wires repositories, services, and handlers, and applies the
// authentication and idempotency middleware to the posting endpoints.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"aurum/internal/handlers"
	"aurum/internal/middleware"
	"aurum/internal/repositories"
	"aurum/internal/services/posting"
	"aurum/internal/services/query"
	"aurum/internal/services/rules"
	"aurum/internal/services/sequence"
	"aurum/internal/services/wallet"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	ledgerRepo := repositories.NewLedgerRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	cacheSvc := repositories.CacheService

	allocator := sequence.NewAllocator(ledgerRepo)
	walletService := wallet.NewService(ledgerRepo, cacheSvc, allocator)
	postingService := posting.NewService(ledgerRepo, rules.NewEngine(), walletService, cacheSvc)
	queryService := query.NewService(txRepo, cacheSvc)

	walletHandler := handlers.NewWalletHandler(walletService)
	txHandler := handlers.NewTransactionHandler(postingService, queryService)
	healthHandler := handlers.NewHealthHandler(db, cacheSvc)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api", middleware.Auth())

	wallets := api.Group("/wallets")
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/:id", walletHandler.GetWallet)
	wallets.Patch("/:id/status", walletHandler.UpdateStatus)
	wallets.Get("/:id/transactions", txHandler.ListByWallet)
	wallets.Get("/:id/transactions/recent", txHandler.ListRecentByOperation)

	postings := api.Group("/", middleware.Idempotency(cacheSvc))
	postings.Post("/wallets/:id/deposit", txHandler.Deposit)
	postings.Post("/wallets/:id/withdraw", txHandler.Withdraw)
	postings.Post("/transfers", txHandler.Transfer)

	api.Get("/transactions/:id", txHandler.GetTransaction)
}
