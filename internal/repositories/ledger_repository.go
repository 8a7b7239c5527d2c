package repositories

import (
	"errors"

	"aurum/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSequenceNotFound    = errors.New("sequence not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
)

// LedgerRepository is the write-side data access contract for the posting
// engine. GetWalletForUpdate and NextSequence take row locks, so callers
// composing a multi-step posting must do so inside ExecuteInTransaction;
// the repository passed to the callback is bound to that transaction and
// every write through it commits or rolls back as one unit.
type LedgerRepository interface {
	// Wallet operations
	CreateWallet(wallet *models.Wallet) error
	GetWallet(id uint) (*models.Wallet, error)
	GetWalletForUpdate(id uint) (*models.Wallet, error)
	UpdateWallet(wallet *models.Wallet) error

	// Customer operations
	CreateCustomer(customer *models.Customer) error
	GetCustomer(id uint) (*models.Customer, error)

	// Ledger records
	CreateTransaction(tx *models.Transaction) error
	UpdateTransactionLinks(tx *models.Transaction) error
	CreateMovement(m *models.MovementTransaction) error
	CreateDepositSender(s *models.DepositSender) error

	// Sequence counters
	NextSequence(name string) (uint64, error)
	CreateSequence(seq *models.Sequence) error

	// Atomic scope
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
