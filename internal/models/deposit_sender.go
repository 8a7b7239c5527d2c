package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositSender records external payer metadata attached to a deposit.
// Only written when both the payer name and cpf are longer than
// MinSenderFieldLen characters.
type DepositSender struct {
	ID         uint            `gorm:"primarykey;autoIncrement:false" json:"id"`
	Cpf        string          `gorm:"not null" json:"cpf"`
	FullName   string          `gorm:"not null" json:"full_name"`
	TerminalID string          `json:"terminal_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MinSenderFieldLen is the minimum length of both cpf and full name for
// payer metadata to be recorded.
const MinSenderFieldLen = 5
