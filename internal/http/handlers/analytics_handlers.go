package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/finance-tracker/internal/charts"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

const (
	expenseByCategory      = "expense_by_category"
	incomeVsExpenseMonthly = "income_vs_expense_monthly"
	topExpenses            = "top_expenses"
)

// AnalyticsSummaryHandler godoc
// @Summary Dashboard chart data
// @Description Aggregates over all of the caller's transactions; listing filters do not apply.
// @Tags analytics
// @Produce json
// @Param type query string false "expense_by_category (default), income_vs_expense_monthly or top_expenses"
// @Success 200 {object} AnalyticsResult
// @Failure 400 {object} ErrorResult
// @Failure 401 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/analytics/summary [get]
// @Security BearerAuth
func AnalyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, uid := r.Context(), userID(r)

	var (
		data any
		err  error
	)
	switch r.URL.Query().Get("type") {
	case "", expenseByCategory:
		data, err = ledgerService.ExpenseByCategory(ctx, uid)
	case incomeVsExpenseMonthly:
		data, err = ledgerService.MonthlyComparison(ctx, uid)
	case topExpenses:
		var rows []models.TransactionRow
		rows, err = ledgerService.TopExpenses(ctx, uid)
		data = toTopExpenses(rows)
	default:
		fail(w, r, http.StatusBadRequest, "invalid analytics type")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, AnalyticsResult{Success: true, Data: data})
}

// AnalyticsChartHandler godoc
// @Summary Dashboard chart image
// @Tags analytics
// @Produce png
// @Param type query string false "expense_by_category (default) or income_vs_expense_monthly"
// @Success 200 {file} file
// @Success 204 "Nothing to draw"
// @Failure 400 {object} ErrorResult
// @Failure 401 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/analytics/chart [get]
// @Security BearerAuth
func AnalyticsChartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, uid := r.Context(), userID(r)

	var (
		img []byte
		err error
	)
	switch r.URL.Query().Get("type") {
	case "", expenseByCategory:
		list, lerr := ledgerService.ExpenseByCategory(ctx, uid)
		if lerr != nil {
			writeError(w, r, lerr)
			return
		}
		img, err = charts.ExpenseByCategory(list)
	case incomeVsExpenseMonthly:
		months, lerr := ledgerService.MonthlyComparison(ctx, uid)
		if lerr != nil {
			writeError(w, r, lerr)
			return
		}
		img, err = charts.MonthlyComparison(months)
	default:
		fail(w, r, http.StatusBadRequest, "invalid chart type")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func toTopExpenses(rows []models.TransactionRow) []TopExpenseResponse {
	out := make([]TopExpenseResponse, 0, len(rows))
	for _, row := range rows {
		name := models.Uncategorized
		if row.CategoryName != nil {
			name = *row.CategoryName
		}
		out = append(out, TopExpenseResponse{
			Description:     row.Description,
			Amount:          row.Amount,
			CategoryName:    name,
			TransactionDate: row.Date.Format(models.DateLayout),
		})
	}
	return out
}
