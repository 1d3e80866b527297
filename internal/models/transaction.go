package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Kind is the direction of money for a transaction or category.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind accepts exactly "income" or "expense".
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Income, Expense:
		return Kind(s), true
	}
	return "", false
}

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        Kind            `json:"type"`
	CategoryID  *int64          `json:"category_id"`
	Description string          `json:"description"`
	Date        time.Time       `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionRow is a transaction joined with its category name, as shown in listings.
type TransactionRow struct {
	Transaction
	CategoryName *string `json:"category_name"`
}

// Summary aggregates a filtered set of transactions.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// Balance is income minus expense.
func (s Summary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}
