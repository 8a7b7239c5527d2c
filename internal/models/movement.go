package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementTransaction is the denormalized reconciliation record written per
// successfully posted transaction leg. For transfers the two legs carry each
// other's transaction and wallet ids; deposits and withdraws stand alone.
type MovementTransaction struct {
	ID                     uint              `gorm:"primarykey;autoIncrement:false" json:"id"`
	TransactionID          uint              `gorm:"index;not null" json:"transaction_id"`
	WalletID               uint              `gorm:"index;not null" json:"wallet_id"`
	TransactionReferenceID *uint             `json:"transaction_reference_id,omitempty"`
	WalletReferenceID      *uint             `json:"wallet_reference_id,omitempty"`
	Amount                 decimal.Decimal   `gorm:"type:numeric(16,2);not null" json:"amount"`
	OperationType          OperationType     `gorm:"not null" json:"operation_type"`
	Status                 TransactionStatus `gorm:"column:status_transaction;not null" json:"status_transaction"`
	CreatedAt              time.Time         `json:"created_at"`
}

// NewMovement derives a movement from a posted transaction leg.
func NewMovement(id uint, tx *Transaction) *MovementTransaction {
	return &MovementTransaction{
		ID:            id,
		TransactionID: tx.ID,
		WalletID:      tx.WalletID,
		Amount:        tx.Amount,
		OperationType: tx.OperationType,
		Status:        tx.Status,
	}
}

// CrossLink points this movement at the counterpart leg of a transfer.
func (m *MovementTransaction) CrossLink(counterpart *Transaction) {
	txID := counterpart.ID
	walletID := counterpart.WalletID
	m.TransactionReferenceID = &txID
	m.WalletReferenceID = &walletID
}
