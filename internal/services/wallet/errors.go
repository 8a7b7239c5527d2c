package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNilTransaction   = errors.New("posted transaction is required")
	ErrNotPosted        = errors.New("transaction was not posted with SUCCESS status")
)
