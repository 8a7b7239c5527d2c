package wallet

import (
	"context"

	"aurum/internal/models"
	"aurum/internal/repositories"
)

// Service owns wallet state. AdjustBalance is the only legal path to a
// balance mutation and is always driven by an already-persisted transaction.
type Service interface {
	CreateWallet(ctx context.Context, customerID uint) (*models.Wallet, error)
	GetWallet(ctx context.Context, walletID uint) (*models.Wallet, error)
	UpdateStatus(ctx context.Context, walletID uint, status models.Status) error

	// AdjustBalance copies the balances fixed on the posted transaction onto
	// the wallet row. It must be called with the repository bound to the
	// posting's database transaction, once per posted leg.
	AdjustBalance(repo repositories.LedgerRepository, wallet *models.Wallet, posted *models.Transaction) error
}
