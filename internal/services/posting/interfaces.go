package posting

import (
	"context"

	"aurum/internal/models"
)

// Service is the transaction posting engine. Each call validates one
// monetary operation, writes its ledger records, and applies the balance
// effect atomically. Validation failures still leave a transaction record
// behind with the failing status and surface as *BusinessRuleViolation.
type Service interface {
	Deposit(ctx context.Context, req DepositRequest) (*models.Transaction, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*models.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error)
}
