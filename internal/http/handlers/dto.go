package handlers

import (
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

type ErrorResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

type TransactionResponse struct {
	ID              int64           `json:"id"`
	TransactionDate string          `json:"transaction_date"`
	Type            models.Kind     `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	CategoryID      *int64          `json:"category_id"`
	CategoryName    *string         `json:"category_name"`
	CreatedAt       time.Time       `json:"created_at"`
}

type SummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
	TotalCount   int             `json:"total_count"`
}

type TransactionsSearchResult struct {
	Success    bool                  `json:"success"`
	Data       []TransactionResponse `json:"data"`
	Summary    SummaryResponse       `json:"summary"`
	Pagination filter.Pagination     `json:"pagination"`
}

type CategoriesResult struct {
	Success bool              `json:"success"`
	Data    []models.Category `json:"data"`
}

type AnalyticsResult struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type TopExpenseResponse struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryName    string          `json:"category_name"`
	TransactionDate string          `json:"transaction_date"`
}

// TransactionRequest documents the create and update body. Amount and
// category_id may be sent as numbers or strings; form bodies use the same names.
type TransactionRequest struct {
	ID          int64  `json:"id,omitempty"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	CategoryID  string `json:"category_id,omitempty"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type LoginResult struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

func toTransactionResponse(row models.TransactionRow) TransactionResponse {
	return TransactionResponse{
		ID:              row.ID,
		TransactionDate: row.Date.Format(models.DateLayout),
		Type:            row.Kind,
		Amount:          row.Amount,
		Description:     row.Description,
		CategoryID:      row.CategoryID,
		CategoryName:    row.CategoryName,
		CreatedAt:       row.CreatedAt,
	}
}
