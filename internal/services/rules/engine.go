// Package rules holds the validation logic for postings. The engine is
// pure: it inspects wallets and amounts and returns an outcome code, never
// touching storage and never returning an error. Only the posting service
// turns a non-SUCCESS outcome into a failure.
package rules

import (
	"github.com/shopspring/decimal"

	"aurum/internal/models"
)

// Minimum amounts accepted for the respective operations.
var (
	MinDeposit  = decimal.NewFromInt(50)
	MinTransfer = decimal.NewFromInt(50)
)

type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

// CheckGeneral validates the wallet and its owning customer. Checks run in
// order and the first failure wins.
func (Engine) CheckGeneral(wallet *models.Wallet) models.TransactionStatus {
	switch {
	case wallet == nil || wallet.ID == 0:
		return models.TransactionWalletInvalid
	case wallet.Customer == nil || wallet.Customer.ID == 0:
		return models.TransactionCustomerInvalid
	case wallet.Customer.Status != models.StatusActive:
		return models.TransactionCustomerStatusInvalid
	case wallet.Status != models.StatusActive:
		return models.TransactionWalletStatusInvalid
	default:
		return models.TransactionSuccess
	}
}

// CheckDeposit validates a deposit of amount into wallet.
func (e Engine) CheckDeposit(wallet *models.Wallet, amount decimal.Decimal) models.TransactionStatus {
	if outcome := e.CheckGeneral(wallet); outcome != models.TransactionSuccess {
		return outcome
	}
	if amount.LessThan(MinDeposit) {
		return models.TransactionAmountDepositInsufficient
	}
	return models.TransactionSuccess
}

// CheckWithdraw validates a withdrawal of amount from wallet.
func (e Engine) CheckWithdraw(wallet *models.Wallet, amount decimal.Decimal) models.TransactionStatus {
	if outcome := e.CheckGeneral(wallet); outcome != models.TransactionSuccess {
		return outcome
	}
	if wallet.CurrentBalance.LessThan(amount) {
		return models.TransactionInsufficientBalance
	}
	return models.TransactionSuccess
}

// CheckTransfer validates a transfer between two wallets. The source wallet
// goes through the general checks; the destination is then checked in the
// documented order: same wallet, source funds, destination customer,
// destination wallet, minimum amount.
func (e Engine) CheckTransfer(from, to *models.Wallet, amount decimal.Decimal) models.TransactionStatus {
	if outcome := e.CheckGeneral(from); outcome != models.TransactionSuccess {
		return outcome
	}
	switch {
	case to == nil || to.ID == 0:
		return models.TransactionWalletInvalid
	case from.ID == to.ID:
		return models.TransactionSameWallet
	case from.CurrentBalance.LessThan(amount):
		return models.TransactionInsufficientBalance
	case to.Customer == nil || to.Customer.ID == 0:
		return models.TransactionCustomerInvalid
	case to.Customer.Status != models.StatusActive:
		return models.TransactionCustomerStatusInvalid
	case to.Status != models.StatusActive:
		return models.TransactionWalletStatusInvalid
	case amount.LessThan(MinTransfer):
		return models.TransactionAmountTransferInvalid
	default:
		return models.TransactionSuccess
	}
}
