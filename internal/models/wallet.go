package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a customer's balance. Ids come from the wallet sequence,
// not the database, so autoIncrement is disabled.
//
// PreviousBalance and CurrentBalance are only ever written by the posting
// service, copied from an already-persisted SUCCESS transaction.
type Wallet struct {
	ID              uint            `gorm:"primarykey;autoIncrement:false" json:"id"`
	CustomerID      uint            `gorm:"index;not null" json:"customer_id"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status          Status          `gorm:"not null;default:4" json:"status"`
	PreviousBalance decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"previous_balance"`
	CurrentBalance  decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"current_balance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
