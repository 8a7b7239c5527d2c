package posting

import (
	"errors"
	"fmt"

	"aurum/internal/models"
)

// Service errors
var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrPersistence    = errors.New("persistence failure")
)

// BusinessRuleViolation is returned when the rule engine rejects an
// operation. The offending attempt is still committed as a failed
// transaction record, carried here for the caller.
type BusinessRuleViolation struct {
	Outcome     models.TransactionStatus
	Transaction *models.Transaction
}

func (e *BusinessRuleViolation) Error() string {
	return e.Outcome.String()
}

// AsBusinessRuleViolation unwraps err into a *BusinessRuleViolation if one
// is present in its chain.
func AsBusinessRuleViolation(err error) (*BusinessRuleViolation, bool) {
	var v *BusinessRuleViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
