package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry. One row is written per posting
// attempt, including attempts that fail validation; failed rows keep their
// failure status for audit and are never updated or deleted.
//
// All four operation kinds share the transactions table and one id space;
// OperationType discriminates the variant. Construct rows only through the
// New* factories below so the before/after balances are fixed at build time.
type Transaction struct {
	ID              uint                 `gorm:"primarykey;autoIncrement:false" json:"id"`
	WalletID        uint                 `gorm:"index;not null" json:"wallet_id"`
	Wallet          *Wallet              `gorm:"foreignKey:WalletID" json:"-"`
	OperationType   OperationType        `gorm:"not null;index" json:"operation_type"`
	PreviousBalance decimal.Decimal      `gorm:"type:numeric(16,2);not null" json:"previous_balance"`
	Amount          decimal.Decimal      `gorm:"type:numeric(16,2);not null" json:"amount"`
	CurrentBalance  decimal.Decimal      `gorm:"type:numeric(16,2);not null" json:"current_balance"`
	Status          TransactionStatus    `gorm:"column:status_transaction;not null;index" json:"status_transaction"`
	MovementID      *uint                `json:"movement_id,omitempty"`
	Movement        *MovementTransaction `gorm:"foreignKey:MovementID" json:"movement,omitempty"`
	DepositSenderID *uint                `json:"deposit_sender_id,omitempty"`
	DepositSender   *DepositSender       `gorm:"foreignKey:DepositSenderID" json:"deposit_sender,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// NewDeposit builds a deposit leg against the wallet's current balance.
func NewDeposit(id uint, wallet *Wallet, amount decimal.Decimal, status TransactionStatus) *Transaction {
	return &Transaction{
		ID:              id,
		WalletID:        wallet.ID,
		OperationType:   OperationDeposit,
		PreviousBalance: wallet.CurrentBalance,
		Amount:          amount,
		CurrentBalance:  wallet.CurrentBalance.Add(amount),
		Status:          status,
	}
}

// NewWithdraw builds a withdraw leg against the wallet's current balance.
func NewWithdraw(id uint, wallet *Wallet, amount decimal.Decimal, status TransactionStatus) *Transaction {
	return &Transaction{
		ID:              id,
		WalletID:        wallet.ID,
		OperationType:   OperationWithdraw,
		PreviousBalance: wallet.CurrentBalance,
		Amount:          amount,
		CurrentBalance:  wallet.CurrentBalance.Sub(amount),
		Status:          status,
	}
}

// NewTransferSend builds the debit leg of a transfer.
func NewTransferSend(id uint, wallet *Wallet, amount decimal.Decimal, status TransactionStatus) *Transaction {
	return &Transaction{
		ID:              id,
		WalletID:        wallet.ID,
		OperationType:   OperationTransferSend,
		PreviousBalance: wallet.CurrentBalance,
		Amount:          amount,
		CurrentBalance:  wallet.CurrentBalance.Sub(amount),
		Status:          status,
	}
}

// NewTransferReceived builds the credit leg of a transfer.
func NewTransferReceived(id uint, wallet *Wallet, amount decimal.Decimal, status TransactionStatus) *Transaction {
	return &Transaction{
		ID:              id,
		WalletID:        wallet.ID,
		OperationType:   OperationTransferReceived,
		PreviousBalance: wallet.CurrentBalance,
		Amount:          amount,
		CurrentBalance:  wallet.CurrentBalance.Add(amount),
		Status:          status,
	}
}
