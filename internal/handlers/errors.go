package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"aurum/internal/services/posting"
	"aurum/internal/services/query"
	"aurum/internal/services/wallet"
)

// serviceError maps core errors onto HTTP responses: missing entities to
// 404, rule violations to 400 with the outcome name and the persisted
// audit record id, anything else to 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, posting.ErrWalletNotFound),
		errors.Is(err, wallet.ErrWalletNotFound),
		errors.Is(err, wallet.ErrCustomerNotFound),
		errors.Is(err, query.ErrTransactionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	if v, ok := posting.AsBusinessRuleViolation(err); ok {
		resp := fiber.Map{"error": v.Outcome.String()}
		if v.Transaction != nil {
			resp["transaction_id"] = v.Transaction.ID
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	zap.L().Error("request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
