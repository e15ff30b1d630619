// Package models defines data structures for the finledger accounting engine.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction debits or credits its owning account.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// validDirections lists all accepted transaction directions.
var validDirections = map[Direction]bool{
	Debit:  true,
	Credit: true,
}

// ValidDirection returns true if d is a valid transaction direction.
func ValidDirection(d Direction) bool {
	return validDirections[d]
}

// maxTransactionAmount is the sanity ceiling for a single movement.
var maxTransactionAmount = decimal.NewFromInt(1_000_000)

// Transaction is an immutable record of one monetary movement. Amount is the
// positive movement size; Direction carries the sign, which the owning account
// applies on add (credit increases the balance, debit decreases it).
type Transaction struct {
	ID          string          `json:"transaction_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Category    string          `json:"category"`
	Merchant    string          `json:"merchant"`
	Description string          `json:"description"`
	AccountType string          `json:"account_type"`
}

// NewTransaction validates all fields and constructs a Transaction.
// A validation failure returns before any value is built.
func NewTransaction(id string, date time.Time, amount decimal.Decimal, direction Direction,
	category, merchant, description, accountType string) (*Transaction, error) {

	switch {
	case strings.TrimSpace(id) == "":
		return nil, &ValidationError{Field: "transaction_id", Reason: "is required"}
	case date.IsZero():
		return nil, &ValidationError{Field: "date", Reason: "is required"}
	case strings.TrimSpace(category) == "":
		return nil, &ValidationError{Field: "category", Reason: "is required"}
	case strings.TrimSpace(merchant) == "":
		return nil, &ValidationError{Field: "merchant", Reason: "is required"}
	case strings.TrimSpace(accountType) == "":
		return nil, &ValidationError{Field: "account_type", Reason: "is required"}
	case !ValidDirection(direction):
		return nil, &ValidationError{Field: "direction", Reason: "must be debit or credit"}
	case amount.Sign() <= 0:
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than 0"}
	case amount.GreaterThan(maxTransactionAmount):
		return nil, &ValidationError{Field: "amount", Reason: "exceeds allowed limit (1,000,000)"}
	}

	return &Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Direction:   direction,
		Category:    category,
		Merchant:    merchant,
		Description: description,
		AccountType: accountType,
	}, nil
}

// SignedAmount returns the balance effect of the transaction: positive for
// credits, negative for debits.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == Credit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Equal reports identity: two transactions are the same record when their IDs match.
func (t *Transaction) Equal(other *Transaction) bool {
	if other == nil {
		return false
	}
	return t.ID == other.ID
}

// Less orders transactions by date, then amount, for deterministic history display.
func (t *Transaction) Less(other *Transaction) bool {
	if t.Date.Equal(other.Date) {
		return t.Amount.LessThan(other.Amount)
	}
	return t.Date.Before(other.Date)
}

// Month returns the calendar month of the transaction date.
func (t *Transaction) Month() time.Month {
	return t.Date.Month()
}

// Year returns the calendar year of the transaction date.
func (t *Transaction) Year() int {
	return t.Date.Year()
}

// String returns a short human-readable summary.
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction(%s, %s, $%s, %s, %s)",
		t.ID, t.Date.Format("2006-01-02"), t.Amount.StringFixed(2), t.Category, t.Merchant)
}

// ToCanonical serializes the transaction to its canonical mapping form.
// The date is RFC 3339 and the amount is the exact decimal string.
func (t *Transaction) ToCanonical() map[string]any {
	return map[string]any{
		"transaction_id": t.ID,
		"date":           t.Date.Format(time.RFC3339),
		"amount":         t.Amount.String(),
		"direction":      string(t.Direction),
		"category":       t.Category,
		"merchant":       t.Merchant,
		"description":    t.Description,
		"account_type":   t.AccountType,
	}
}

// TransactionFromCanonical reconstructs a Transaction from its canonical mapping
// form. The result passes the same validation as direct construction.
// Description defaults to empty and direction defaults to debit when absent.
func TransactionFromCanonical(data map[string]any) (*Transaction, error) {
	id, _ := data["transaction_id"].(string)

	dateStr, _ := data["date"].(string)
	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: fmt.Sprintf("is not a valid RFC 3339 timestamp: %v", err)}
	}

	amount, err := canonicalAmount(data["amount"])
	if err != nil {
		return nil, err
	}

	direction := Debit
	if d, ok := data["direction"].(string); ok && d != "" {
		direction = Direction(d)
	}

	category, _ := data["category"].(string)
	merchant, _ := data["merchant"].(string)
	description, _ := data["description"].(string)
	accountType, _ := data["account_type"].(string)

	return NewTransaction(id, date, amount, direction, category, merchant, description, accountType)
}

// canonicalAmount accepts the amount as a decimal string or a plain number,
// since generic JSON decoding produces float64.
func canonicalAmount(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case string:
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("is not a valid decimal: %v", err)}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(a), nil
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int64:
		return decimal.NewFromInt(a), nil
	case decimal.Decimal:
		return a, nil
	default:
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "is missing or has an unsupported type"}
	}
}
