package models

import (
	"database/sql/driver"
	"fmt"
)

// Status is the lifecycle state shared by customers and wallets.
// Persisted as a small integer; only StatusActive permits postings.
type Status int16

const (
	StatusActive Status = iota + 1
	StatusInactive
	StatusBlocked
	StatusPending
	StatusReview
	StatusWaitingVerification
	StatusArchived
)

var statusNames = map[Status]string{
	StatusActive:              "ACTIVE",
	StatusInactive:            "INACTIVE",
	StatusBlocked:             "BLOCKED",
	StatusPending:             "PENDING",
	StatusReview:              "REVIEW",
	StatusWaitingVerification: "WAITING_VERIFICATION",
	StatusArchived:            "ARCHIVED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int16(s))
}

// StatusFromCode maps a persisted integer code back to its Status.
func StatusFromCode(code int16) (Status, error) {
	s := Status(code)
	if _, ok := statusNames[s]; !ok {
		return 0, fmt.Errorf("invalid status code %d", code)
	}
	return s, nil
}

func (s Status) Value() (driver.Value, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("invalid status %d", int16(s))
	}
	return int64(s), nil
}

func (s *Status) Scan(value interface{}) error {
	code, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into Status", value)
	}
	parsed, err := StatusFromCode(int16(code))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OperationType discriminates the transaction variants.
type OperationType int16

const (
	OperationWithdraw OperationType = iota + 1
	OperationDeposit
	OperationTransferSend
	OperationTransferReceived
)

var operationNames = map[OperationType]string{
	OperationWithdraw:         "WITHDRAW",
	OperationDeposit:          "DEPOSIT",
	OperationTransferSend:     "TRANSFER_SEND",
	OperationTransferReceived: "TRANSFER_RECEIVED",
}

func (o OperationType) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int16(o))
}

// OperationTypeFromCode maps a persisted integer code back to its OperationType.
func OperationTypeFromCode(code int16) (OperationType, error) {
	o := OperationType(code)
	if _, ok := operationNames[o]; !ok {
		return 0, fmt.Errorf("invalid operation type code %d", code)
	}
	return o, nil
}

func (o OperationType) Value() (driver.Value, error) {
	if _, ok := operationNames[o]; !ok {
		return nil, fmt.Errorf("invalid operation type %d", int16(o))
	}
	return int64(o), nil
}

func (o *OperationType) Scan(value interface{}) error {
	code, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into OperationType", value)
	}
	parsed, err := OperationTypeFromCode(int16(code))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// TransactionStatus is the closed set of posting outcomes. Only
// TransactionSuccess permits a balance mutation.
type TransactionStatus int16

const (
	TransactionSuccess TransactionStatus = iota + 1
	TransactionInsufficientBalance
	TransactionSameWallet
	TransactionInvalid
	TransactionAmountDepositInsufficient
	TransactionWalletStatusInvalid
	TransactionAmountTransferInvalid
	TransactionCustomerStatusInvalid
	TransactionWalletInvalid
	TransactionCustomerInvalid
)

var transactionStatusNames = map[TransactionStatus]string{
	TransactionSuccess:                   "SUCCESS",
	TransactionInsufficientBalance:       "INSUFFICIENT_BALANCE",
	TransactionSameWallet:                "SAME_WALLET",
	TransactionInvalid:                   "INVALID",
	TransactionAmountDepositInsufficient: "AMOUNT_DEPOSIT_INSUFFICIENT",
	TransactionWalletStatusInvalid:       "WALLET_STATUS_INVALID",
	TransactionAmountTransferInvalid:     "AMOUNT_TRANSFER_INVALID",
	TransactionCustomerStatusInvalid:     "CUSTOMER_STATUS_INVALID",
	TransactionWalletInvalid:             "WALLET_INVALID",
	TransactionCustomerInvalid:           "CUSTOMER_INVALID",
}

func (t TransactionStatus) String() string {
	if name, ok := transactionStatusNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int16(t))
}

// TransactionStatusFromCode maps a persisted integer code back to its TransactionStatus.
func TransactionStatusFromCode(code int16) (TransactionStatus, error) {
	t := TransactionStatus(code)
	if _, ok := transactionStatusNames[t]; !ok {
		return 0, fmt.Errorf("invalid transaction status code %d", code)
	}
	return t, nil
}

func (t TransactionStatus) Value() (driver.Value, error) {
	if _, ok := transactionStatusNames[t]; !ok {
		return nil, fmt.Errorf("invalid transaction status %d", int16(t))
	}
	return int64(t), nil
}

func (t *TransactionStatus) Scan(value interface{}) error {
	code, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into TransactionStatus", value)
	}
	parsed, err := TransactionStatusFromCode(int16(code))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
