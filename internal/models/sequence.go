package models

import "time"

// Sequence is a named persistent counter. Rows are incremented under a row
// lock so concurrent allocations never observe the same value.
type Sequence struct {
	Name      string    `gorm:"primarykey" json:"name"`
	Value     uint64    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Counter names. Every id in the system is drawn from one of these rows.
const (
	SeqWallet        = "wallet_id"
	SeqTransaction   = "transaction_id"
	SeqMovement      = "movement_id"
	SeqDepositSender = "deposit_sender_id"
)

// SequenceNames lists every counter the seed must provision.
var SequenceNames = []string{SeqWallet, SeqTransaction, SeqMovement, SeqDepositSender}
