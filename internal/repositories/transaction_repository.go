package repositories

import (
	"context"

	"aurum/internal/models"
)

// TransactionRepository is the read side of the ledger. Listings are always
// newest-first: created_at DESC with id DESC as tiebreaker, so concurrent
// postings in the same millisecond still page deterministically.
type TransactionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	ListByWalletAndStatus(ctx context.Context, walletID uint, status *models.TransactionStatus, limit, offset int) ([]models.Transaction, int64, error)
	ListRecentByOperation(ctx context.Context, walletID uint, op models.OperationType, limit int) ([]models.Transaction, error)
}
