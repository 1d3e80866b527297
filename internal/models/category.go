package models

import "github.com/shopspring/decimal"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

// CategoryExpense is the expense total of one category.
type CategoryExpense struct {
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// MonthlyTotals compares income and expense for one calendar month.
type MonthlyTotals struct {
	Month        string          `json:"month"`
	MonthLabel   string          `json:"month_label"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Uncategorized labels transactions without a category in reports.
const Uncategorized = "Uncategorized"
