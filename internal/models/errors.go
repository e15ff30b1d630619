package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrEmptyPortfolio is returned by performer queries on a portfolio with no holdings.
var ErrEmptyPortfolio = errors.New("portfolio has no holdings")

// ValidationError reports a malformed field on a transaction, account, or holding.
// Construction fails before any state is touched, so a failed build never leaves
// a partially-initialized value behind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// OverdraftError is returned when a checking-account debit would push the
// balance below the negative overdraft limit. The account is left unchanged.
type OverdraftError struct {
	Account   string
	Limit     decimal.Decimal
	Projected decimal.Decimal
}

func (e *OverdraftError) Error() string {
	return fmt.Sprintf("transaction declined on %q: projected balance %s breaches overdraft limit %s",
		e.Account, e.Projected.StringFixed(2), e.Limit.Neg().StringFixed(2))
}
