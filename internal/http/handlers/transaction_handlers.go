package handlers

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/ledger"
)

func listingSpec(q url.Values) filter.Spec {
	return filter.FromValues(q, filter.Defaults{
		Limit:    listingLimit,
		Now:      ledgerService.Now(),
		Location: ledgerService.Location(),
	})
}

// FilterTransactionsHandler godoc
// @Summary Filter, sort and paginate transactions
// @Tags transactions
// @Produce json
// @Param type query string false "income or expense"
// @Param category_id query int false "Category ID"
// @Param search query string false "Substring of the description"
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param range query string false "today, week, month or year when no explicit dates are given"
// @Param sort_by query string false "date, amount, type, category_name or description"
// @Param sort_order query string false "ASC or DESC"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} TransactionsSearchResult
// @Failure 401 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/transactions [get]
// @Security BearerAuth
func FilterTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := ledgerService.Search(r.Context(), userID(r), listingSpec(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]TransactionResponse, 0, len(page.Rows))
	for _, row := range page.Rows {
		data = append(data, toTransactionResponse(row))
	}

	respond(w, r, http.StatusOK, TransactionsSearchResult{
		Success: true,
		Data:    data,
		Summary: SummaryResponse{
			TotalIncome:  page.Summary.TotalIncome,
			TotalExpense: page.Summary.TotalExpense,
			Balance:      page.Summary.Balance(),
			Count:        page.Count,
			TotalCount:   page.Count,
		},
		Pagination: page.Pagination,
	})
}

// ExportTransactionsHandler godoc
// @Summary Export filtered transactions as CSV
// @Tags transactions
// @Produce text/csv
// @Param type query string false "income or expense"
// @Param category_id query int false "Category ID"
// @Param search query string false "Substring of the description"
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "ASC or DESC"
// @Success 200 {file} file
// @Failure 401 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/transactions/export [get]
// @Security BearerAuth
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := ledgerService.Export(r.Context(), &buf, userID(r), listingSpec(r.URL.Query())); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ledgerService.ExportFilename()+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// CreateTransactionHandler godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param transaction body TransactionRequest true "Transaction to create"
// @Success 201 {object} MessageResult
// @Failure 400 {object} ErrorResult
// @Failure 401 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/transactions [post]
// @Security BearerAuth
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := ledgerService.Create(r.Context(), userID(r), transactionInput(fields))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, MessageResult{Success: true, Message: "transaction created", ID: tx.ID})
}

// UpdateTransactionHandler godoc
// @Summary Update a transaction
// @Description The id comes from the path, or from the body on POST /api/transactions/update.
// @Tags transactions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int false "Transaction ID"
// @Param transaction body TransactionRequest true "New values"
// @Success 200 {object} MessageResult
// @Failure 400 {object} ErrorResult
// @Failure 403 {object} ErrorResult
// @Failure 404 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/transactions/{id} [put]
// @Security BearerAuth
func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := ledgerService.Update(r.Context(), userID(r), transactionID(r, fields), transactionInput(fields))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, MessageResult{Success: true, Message: "transaction updated", ID: tx.ID})
}

// DeleteTransactionHandler godoc
// @Summary Delete a transaction
// @Description The id comes from the path, or from the body on POST /api/transactions/delete.
// @Tags transactions
// @Produce json
// @Param id path int false "Transaction ID"
// @Success 200 {object} MessageResult
// @Failure 400 {object} ErrorResult
// @Failure 403 {object} ErrorResult
// @Failure 404 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/transactions/{id} [delete]
// @Security BearerAuth
func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var fields url.Values
	if chi.URLParam(r, "id") == "" {
		var err error
		if fields, err = readFields(w, r); err != nil {
			fail(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	id := transactionID(r, fields)
	if err := ledgerService.Delete(r.Context(), userID(r), id); err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, MessageResult{Success: true, Message: "transaction deleted", ID: id})
}

// transactionID reads the id from the path, falling back to the body.
// Anything unparsable becomes 0, which the service rejects.
func transactionID(r *http.Request, fields url.Values) int64 {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		raw = fields.Get("id")
	}
	id, _ := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id
}

func transactionInput(fields url.Values) ledger.TransactionInput {
	date := fields.Get("date")
	if date == "" {
		date = fields.Get("transaction_date")
	}
	return ledger.TransactionInput{
		Amount:      fields.Get("amount"),
		Type:        fields.Get("type"),
		CategoryID:  fields.Get("category_id"),
		Description: fields.Get("description"),
		Date:        date,
	}
}
