package posting

import "github.com/shopspring/decimal"

// DepositRequest credits a wallet. Sender fields are optional payer
// metadata; a DepositSender record is only written when both SenderName and
// SenderCpf are longer than models.MinSenderFieldLen.
type DepositRequest struct {
	WalletID   uint
	Amount     decimal.Decimal
	SenderCpf  string
	SenderName string
	TerminalID string
}

// WithdrawRequest debits a wallet.
type WithdrawRequest struct {
	WalletID uint
	Amount   decimal.Decimal
}

// TransferRequest moves an amount between two wallets as one atomic unit,
// producing a cross-linked send/receive transaction pair.
type TransferRequest struct {
	FromWalletID uint
	ToWalletID   uint
	Amount       decimal.Decimal
}
