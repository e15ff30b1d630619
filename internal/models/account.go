package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind selects the policy applied at the operation site: checking
// accounts enforce an overdraft limit on debits, savings accounts accept
// interest. There is no other behavioral difference.
type AccountKind string

const (
	KindChecking AccountKind = "checking"
	KindSavings  AccountKind = "savings"
)

// Account is a mutable ledger of transactions with a derived balance.
// Balance always equals OpeningBalance plus the sum of the signed amounts of
// the currently held transactions. Transactions are kept in insertion order
// (application order, not necessarily timestamp order) and each transaction
// belongs to exactly one account.
//
// Fields are exported for snapshot serialization; mutate only through the
// methods below so the balance invariant holds.
type Account struct {
	Name           string          `json:"name"`
	Kind           AccountKind     `json:"kind"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit,omitempty"`
	Transactions   []Transaction   `json:"transactions"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewCheckingAccount creates a checking account with an overdraft limit.
// A debit is rejected when it would push the balance below -limit; landing
// exactly at -limit is accepted.
func NewCheckingAccount(name string, opening, overdraftLimit decimal.Decimal) (*Account, error) {
	if overdraftLimit.Sign() < 0 {
		return nil, &ValidationError{Field: "overdraft_limit", Reason: "must not be negative"}
	}
	return newAccount(name, KindChecking, opening, overdraftLimit)
}

// NewSavingsAccount creates a savings account.
func NewSavingsAccount(name string, opening decimal.Decimal) (*Account, error) {
	return newAccount(name, KindSavings, opening, decimal.Zero)
}

func newAccount(name string, kind AccountKind, opening, overdraftLimit decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	return &Account{
		Name:           name,
		Kind:           kind,
		OpeningBalance: opening,
		Balance:        opening,
		OverdraftLimit: overdraftLimit,
		Transactions:   []Transaction{},
		CreatedAt:      time.Now(),
	}, nil
}

// AddTransaction appends tx to the history and applies its signed amount to
// the balance in one step. For checking accounts the projected balance is
// checked against the overdraft limit first; on rejection the account is
// left untouched.
func (a *Account) AddTransaction(tx *Transaction) error {
	if tx == nil {
		return &ValidationError{Field: "transaction", Reason: "is required"}
	}

	projected := a.Balance.Add(tx.SignedAmount())
	if a.Kind == KindChecking && projected.LessThan(a.OverdraftLimit.Neg()) {
		return &OverdraftError{Account: a.Name, Limit: a.OverdraftLimit, Projected: projected}
	}

	a.Transactions = append(a.Transactions, *tx)
	a.Balance = projected
	return nil
}

// RemoveTransaction removes the transaction with the given id from the history
// and reverses its balance effect. Returns false and leaves the account
// unchanged when no transaction matches.
func (a *Account) RemoveTransaction(id string) bool {
	for i := range a.Transactions {
		if a.Transactions[i].ID == id {
			a.Balance = a.Balance.Sub(a.Transactions[i].SignedAmount())
			a.Transactions = append(a.Transactions[:i], a.Transactions[i+1:]...)
			return true
		}
	}
	return false
}

// TransactionsByCategory returns the transactions whose own category matches,
// case-insensitively, preserving history order.
func (a *Account) TransactionsByCategory(category string) []Transaction {
	var matched []Transaction
	for _, tx := range a.Transactions {
		if strings.EqualFold(tx.Category, category) {
			matched = append(matched, tx)
		}
	}
	return matched
}

// MonthlySummary returns the total signed amount per category for transactions
// dated in the given year and month. Categories with no activity in the period
// are absent from the result.
func (a *Account) MonthlySummary(year int, month time.Month) map[string]decimal.Decimal {
	summary := make(map[string]decimal.Decimal)
	for _, tx := range a.Transactions {
		if tx.Year() == year && tx.Month() == month {
			summary[tx.Category] = summary[tx.Category].Add(tx.SignedAmount())
		}
	}
	return summary
}

// MonthlyNet returns the net signed flow for the given year and month.
func (a *Account) MonthlyNet(year int, month time.Month) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range a.Transactions {
		if tx.Year() == year && tx.Month() == month {
			net = net.Add(tx.SignedAmount())
		}
	}
	return net
}

// MonthlyDebits returns the total debit amount (as a positive figure) per
// category for transactions dated in the given year and month.
func (a *Account) MonthlyDebits(year int, month time.Month) map[string]decimal.Decimal {
	debits := make(map[string]decimal.Decimal)
	for _, tx := range a.Transactions {
		if tx.Direction == Debit && tx.Year() == year && tx.Month() == month {
			debits[tx.Category] = debits[tx.Category].Add(tx.Amount)
		}
	}
	return debits
}

// ApplyInterest credits balance * ratePct/100 directly to a savings account.
// No transaction record is emitted; the credited interest folds into the
// opening balance so that Balance == OpeningBalance + sum of signed amounts
// continues to hold.
func (a *Account) ApplyInterest(ratePct decimal.Decimal) error {
	if a.Kind != KindSavings {
		return &ValidationError{Field: "kind", Reason: "must be savings to earn interest"}
	}
	interest := a.Balance.Mul(ratePct).Div(decimal.NewFromInt(100))
	a.Balance = a.Balance.Add(interest)
	a.OpeningBalance = a.OpeningBalance.Add(interest)
	return nil
}

// BalanceHistory returns the running balance after each transaction in
// application order, starting from the opening balance. The slice is freshly
// built on each call; callers never share mutable state with the account.
func (a *Account) BalanceHistory() []float64 {
	history := make([]float64, 0, len(a.Transactions)+1)
	running := a.OpeningBalance
	history = append(history, running.InexactFloat64())
	for _, tx := range a.Transactions {
		running = running.Add(tx.SignedAmount())
		history = append(history, running.InexactFloat64())
	}
	return history
}

// MonthRange returns the first and last transaction months, in history-date
// order. ok is false when the account has no transactions.
func (a *Account) MonthRange() (first, last time.Time, ok bool) {
	for _, tx := range a.Transactions {
		m := time.Date(tx.Year(), tx.Month(), 1, 0, 0, 0, 0, time.UTC)
		if !ok {
			first, last, ok = m, m, true
			continue
		}
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}
	return first, last, ok
}
