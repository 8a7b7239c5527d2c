package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"aurum/internal/models"
	"aurum/internal/services/wallet"
)

type WalletHandler struct {
	wallets wallet.Service
}

func NewWalletHandler(wallets wallet.Service) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	var input struct {
		CustomerID uint `json:"customer_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.CustomerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "customer_id is required"})
	}

	w, err := h.wallets.CreateWallet(c.Context(), input.CustomerID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	walletID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid wallet id"})
	}

	w, err := h.wallets.GetWallet(c.Context(), walletID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(w)
}

func (h *WalletHandler) UpdateStatus(c *fiber.Ctx) error {
	walletID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid wallet id"})
	}

	var input struct {
		Status int16 `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	status, err := models.StatusFromCode(input.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.wallets.UpdateStatus(c.Context(), walletID, status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "wallet status updated"})
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
