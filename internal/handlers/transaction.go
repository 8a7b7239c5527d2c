package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"aurum/internal/models"
	"aurum/internal/services/posting"
	"aurum/internal/services/query"
	"aurum/internal/utils/pagination"
	"aurum/internal/validation"
)

type TransactionHandler struct {
	posting posting.Service
	query   query.Service
}

func NewTransactionHandler(postingSvc posting.Service, querySvc query.Service) *TransactionHandler {
	return &TransactionHandler{
		posting: postingSvc,
		query:   querySvc,
	}
}

// Amounts travel as strings on the wire so precision survives JSON.
// Parsing enforces the 2-decimal-place, 14-integer-digit contract before
// anything reaches the posting engine.

func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	walletID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid wallet id"})
	}

	var input struct {
		Amount     string `json:"amount"`
		SenderCpf  string `json:"sender_cpf"`
		SenderName string `json:"sender_name"`
		TerminalID string `json:"terminal_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	amount, err := validation.ParseAmount(input.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tx, err := h.posting.Deposit(c.Context(), posting.DepositRequest{
		WalletID:   walletID,
		Amount:     amount,
		SenderCpf:  input.SenderCpf,
		SenderName: input.SenderName,
		TerminalID: input.TerminalID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	walletID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid wallet id"})
	}

	var input struct {
		Amount string `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	amount, err := validation.ParseAmount(input.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tx, err := h.posting.Withdraw(c.Context(), posting.WithdrawRequest{
		WalletID: walletID,
		Amount:   amount,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var input struct {
		FromWalletID uint   `json:"from_wallet_id"`
		ToWalletID   uint   `json:"to_wallet_id"`
		Amount       string `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.FromWalletID == 0 || input.ToWalletID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from_wallet_id and to_wallet_id are required"})
	}
	amount, err := validation.ParseAmount(input.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tx, err := h.posting.Transfer(c.Context(), posting.TransferRequest{
		FromWalletID: input.FromWalletID,
		ToWalletID:   input.ToWalletID,
		Amount:       amount,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid transaction id"})
	}

	tx, err := h.query.GetTransaction(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) ListByWallet(c *fiber.Ctx) error {
	walletID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid wallet id"})
	}

	var status *models.TransactionStatus
	if raw := c.Query("status"); raw != "" {
		code, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
		}
		parsed, err := models.TransactionStatusFromCode(int16(code))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		status = &parsed
	}

	p := pagination.ParseFromRequest(c)
	page, err := h.query.ListByWallet(c.Context(), walletID, status, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}
	p.Total = page.Total
	return c.JSON(pagination.Response(p, page.Transactions))
}

func (h *TransactionHandler) ListRecentByOperation(c *fiber.Ctx) error {
	walletID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid wallet id"})
	}

	code, err := strconv.ParseInt(c.Query("operation"), 10, 16)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "operation is required"})
	}
	op, err := models.OperationTypeFromCode(int16(code))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	txs, err := h.query.ListRecentByOperation(c.Context(), walletID, op, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"data": txs})
}
