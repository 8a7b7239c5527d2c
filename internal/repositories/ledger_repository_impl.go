package repositories

import (
	"errors"
	"fmt"

	"aurum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateWallet(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetWallet(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Preload("Customer").First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// GetWalletForUpdate locks the wallet row for the remainder of the enclosing
// transaction. Callers locking two wallets must lock the lower id first.
func (r *ledgerRepository) GetWalletForUpdate(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Customer").
		First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) UpdateWallet(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreateCustomer(customer *models.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *ledgerRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransactionLinks writes only the movement and deposit-sender ids.
// The monetary fields of a persisted transaction are immutable.
func (r *ledgerRepository) UpdateTransactionLinks(tx *models.Transaction) error {
	err := r.db.Model(&models.Transaction{}).
		Where("id = ?", tx.ID).
		Updates(map[string]interface{}{
			"movement_id":       tx.MovementID,
			"deposit_sender_id": tx.DepositSenderID,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to link transaction %d: %w", tx.ID, err)
	}
	return nil
}

func (r *ledgerRepository) CreateMovement(m *models.MovementTransaction) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create movement: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreateDepositSender(s *models.DepositSender) error {
	if err := r.db.Create(s).Error; err != nil {
		return fmt.Errorf("failed to create deposit sender: %w", err)
	}
	return nil
}

// NextSequence increments the named counter under a row lock and returns the
// new value. Two concurrent callers on the same counter serialize here; this
// is the primary contention point of the whole system.
func (r *ledgerRepository) NextSequence(name string) (uint64, error) {
	var value uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var seq models.Sequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&seq).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSequenceNotFound
			}
			return fmt.Errorf("failed to lock sequence %q: %w", name, err)
		}

		seq.Value++
		if err := tx.Save(&seq).Error; err != nil {
			return fmt.Errorf("failed to advance sequence %q: %w", name, err)
		}

		value = seq.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *ledgerRepository) CreateSequence(seq *models.Sequence) error {
	if err := r.db.Create(seq).Error; err != nil {
		return fmt.Errorf("failed to create sequence %q: %w", seq.Name, err)
	}
	return nil
}

// ExecuteInTransaction runs fn against a repository bound to a single
// database transaction. Everything written through fn commits atomically.
func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
