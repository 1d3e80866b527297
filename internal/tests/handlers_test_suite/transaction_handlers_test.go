package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/finance-tracker/internal/http"
	handler "github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
	"github.com/shopspring/decimal"
)

func TestCreateTransactionHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	w := createTransaction(r, token, handler.TransactionRequest{
		Amount: "100000", Type: "expense", CategoryID: categoryID(food), Description: "Ăn sáng", Date: "2024-01-05",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var created handler.MessageResult
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !created.Success || created.ID <= 0 {
		t.Fatalf("expected success with an id, got %+v", created)
	}

	_, resp := filterTransactions(r, token, "")
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(resp.Data))
	}
	row := resp.Data[0]
	if row.ID != created.ID {
		t.Errorf("expected id %d, got %d", created.ID, row.ID)
	}
	if row.TransactionDate != "2024-01-05" {
		t.Errorf("expected date 2024-01-05, got %s", row.TransactionDate)
	}
	if row.CategoryName == nil || *row.CategoryName != "Food" {
		t.Errorf("expected category Food, got %v", row.CategoryName)
	}
	if !row.Amount.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected amount 100000, got %s", row.Amount)
	}
}

func TestCreateTransactionHandler_DefaultsDateToToday(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	mustCreate(r, token, handler.TransactionRequest{Amount: "12.50", Type: "expense", Description: "Coffee"})

	_, resp := filterTransactions(r, token, "")
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(resp.Data))
	}
	if resp.Data[0].TransactionDate != "2024-06-15" {
		t.Errorf("expected today's date, got %s", resp.Data[0].TransactionDate)
	}
	if resp.Data[0].CategoryID != nil {
		t.Errorf("expected no category, got %v", *resp.Data[0].CategoryID)
	}
}

func TestCreateTransactionHandler_FormBody(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	form := url.Values{
		"amount":           {"5000000"},
		"type":             {"income"},
		"category_id":      {categoryID(salary)},
		"description":      {"Lương"},
		"transaction_date": {"2024-01-31"},
	}
	w := postForm(r, "/api/transactions", token, form.Encode())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	_, resp := filterTransactions(r, token, "type=income")
	if len(resp.Data) != 1 || resp.Data[0].Description != "Lương" {
		t.Fatalf("expected the income row, got %+v", resp.Data)
	}
}

func TestCreateTransactionHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	tests := []struct {
		name            string
		payload         handler.TransactionRequest
		expectedMessage string
	}{
		{
			name:            "Every field wrong",
			payload:         handler.TransactionRequest{Amount: "0", Type: "gift", Description: "ab"},
			expectedMessage: "amount must be greater than 0, type must be income or expense, description must be at least 3 characters",
		},
		{
			name:            "Non numeric amount",
			payload:         handler.TransactionRequest{Amount: "abc", Type: "expense", Description: "Lunch"},
			expectedMessage: "amount must be greater than 0",
		},
		{
			name:            "Amount below one cent",
			payload:         handler.TransactionRequest{Amount: "0.001", Type: "expense", Description: "Lunch"},
			expectedMessage: "amount must have at most 2 decimal places",
		},
		{
			name:            "Future date",
			payload:         handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Lunch", Date: "2024-06-16"},
			expectedMessage: "date cannot be in the future",
		},
		{
			name:            "Malformed date",
			payload:         handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Lunch", Date: "15/06/2024"},
			expectedMessage: "date must be in YYYY-MM-DD format",
		},
		{
			name:            "Category of the other type",
			payload:         handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Lunch", CategoryID: categoryID(salary)},
			expectedMessage: "category type does not match transaction type",
		},
		{
			name:            "Unknown category",
			payload:         handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Lunch", CategoryID: "999"},
			expectedMessage: "category does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTransaction(r, token, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			resp := decodeError(w)
			if resp.Success {
				t.Error("expected success false")
			}
			if resp.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, resp.Message)
			}
		})
	}

	if _, resp := filterTransactions(r, token, ""); resp.Pagination.TotalRows != 0 {
		t.Errorf("expected nothing stored, got %d rows", resp.Pagination.TotalRows)
	}
}

func TestFilterTransactionsHandler_KindFilterAndSummary(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	mustCreate(r, token, handler.TransactionRequest{Amount: "100000", Type: "expense", Description: "Ăn sáng", Date: "2024-01-05"})
	mustCreate(r, token, handler.TransactionRequest{Amount: "5000000", Type: "income", Description: "Lương", Date: "2024-01-31"})

	w, resp := filterTransactions(r, token, "type=expense")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if len(resp.Data) != 1 || resp.Data[0].Description != "Ăn sáng" {
		t.Fatalf("expected only the expense, got %+v", resp.Data)
	}

	s := resp.Summary
	if !s.TotalIncome.IsZero() {
		t.Errorf("expected total income 0, got %s", s.TotalIncome)
	}
	if !s.TotalExpense.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("expected total expense 100000, got %s", s.TotalExpense)
	}
	if !s.Balance.Equal(decimal.NewFromInt(-100000)) {
		t.Errorf("expected balance -100000, got %s", s.Balance)
	}
	if s.Count != 1 || s.TotalCount != 1 {
		t.Errorf("expected count 1, got %d/%d", s.Count, s.TotalCount)
	}

	_, all := filterTransactions(r, token, "")
	if !all.Summary.Balance.Equal(decimal.NewFromInt(4900000)) {
		t.Errorf("expected unfiltered balance 4900000, got %s", all.Summary.Balance)
	}
}

func TestFilterTransactionsHandler_SearchCategoryAndDates(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	mustCreate(r, token, handler.TransactionRequest{Amount: "30", Type: "expense", CategoryID: categoryID(food), Description: "Lunch with team", Date: "2024-03-10"})
	mustCreate(r, token, handler.TransactionRequest{Amount: "15", Type: "expense", CategoryID: categoryID(transport), Description: "Bus ticket", Date: "2024-03-12"})
	mustCreate(r, token, handler.TransactionRequest{Amount: "20", Type: "expense", CategoryID: categoryID(food), Description: "LUNCH alone", Date: "2024-04-02"})
	mustCreate(r, token, handler.TransactionRequest{Amount: "7", Type: "expense", Description: "100% juice", Date: "2024-04-03"})

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"Case insensitive search", "search=lunch", []string{"LUNCH alone", "Lunch with team"}},
		{"Category", "category_id=" + categoryID(transport), []string{"Bus ticket"}},
		{"Invalid category is ignored", "category_id=abc", []string{"100% juice", "LUNCH alone", "Bus ticket", "Lunch with team"}},
		{"Inclusive date range", "date_from=2024-03-12&date_to=2024-04-02", []string{"LUNCH alone", "Bus ticket"}},
		{"Only lower bound", "date_from=2024-04-01", []string{"100% juice", "LUNCH alone"}},
		{"Percent sign is literal", "search=" + url.QueryEscape("%"), []string{"100% juice"}},
		{"Combined", "search=lunch&category_id=" + categoryID(food) + "&date_to=2024-03-31", []string{"Lunch with team"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := filterTransactions(r, token, tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var got []string
			for _, row := range resp.Data {
				got = append(got, row.Description)
			}
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			if resp.Summary.Count != len(tt.expected) {
				t.Errorf("expected count %d, got %d", len(tt.expected), resp.Summary.Count)
			}
		})
	}
}

func TestFilterTransactionsHandler_Pagination(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	for i := 1; i <= 25; i++ {
		mustCreate(r, token, handler.TransactionRequest{
			Amount: fmt.Sprint(i), Type: "expense", Description: fmt.Sprintf("Item %02d", i), Date: fmt.Sprintf("2024-01-%02d", i),
		})
	}

	tests := []struct {
		name        string
		query       string
		rows        int
		currentPage int
		hasNext     bool
		hasPrev     bool
	}{
		{"First page", "limit=10", 10, 1, true, false},
		{"Last page", "limit=10&page=3", 5, 3, false, true},
		{"Page beyond the end is clamped", "limit=10&page=99", 5, 3, false, true},
		{"Page below one is clamped", "limit=10&page=-4", 10, 1, true, false},
		{"Default page size", "", 10, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp := filterTransactions(r, token, tt.query)
			p := resp.Pagination
			if len(resp.Data) != tt.rows {
				t.Errorf("expected %d rows, got %d", tt.rows, len(resp.Data))
			}
			if p.CurrentPage != tt.currentPage || p.HasNext != tt.hasNext || p.HasPrev != tt.hasPrev {
				t.Errorf("unexpected pagination %+v", p)
			}
			if p.TotalPages != 3 || p.TotalRows != 25 || p.PerPage != 10 {
				t.Errorf("expected 3 pages of 10 over 25 rows, got %+v", p)
			}
		})
	}

	_, last := filterTransactions(r, token, "limit=10&page=3")
	if last.Data[0].Description != "Item 05" || last.Data[4].Description != "Item 01" {
		t.Errorf("expected the five oldest rows newest first, got %s..%s", last.Data[0].Description, last.Data[4].Description)
	}

	_, big := filterTransactions(r, token, "limit=500")
	if big.Pagination.PerPage != 100 || len(big.Data) != 25 {
		t.Errorf("expected limit clamped to 100, got %d with %d rows", big.Pagination.PerPage, len(big.Data))
	}
}

func TestFilterTransactionsHandler_Sorting(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	a := mustCreate(r, token, handler.TransactionRequest{Amount: "50", Type: "expense", Description: "First fifty", Date: "2024-02-01"})
	b := mustCreate(r, token, handler.TransactionRequest{Amount: "20", Type: "expense", Description: "Twenty", Date: "2024-02-03"})
	c := mustCreate(r, token, handler.TransactionRequest{Amount: "50", Type: "expense", Description: "Second fifty", Date: "2024-02-02"})

	ids := func(resp handler.TransactionsSearchResult) []int64 {
		var out []int64
		for _, row := range resp.Data {
			out = append(out, row.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		query    string
		expected []int64
	}{
		{"Amount ascending breaks ties by newest id", "sort_by=amount&sort_order=asc", []int64{b, c, a}},
		{"Amount descending", "sort_by=amount&sort_order=DESC", []int64{c, a, b}},
		{"Default is newest date first", "", []int64{b, c, a}},
		{"Date ascending", "sort_by=date&sort_order=ASC", []int64{a, c, b}},
		{"Invalid order becomes descending", "sort_by=amount&sort_order=sideways", []int64{c, a, b}},
		{"Injection attempt falls back to date", "sort_by=" + url.QueryEscape("amount; DROP TABLE transactions") + "&sort_order=ASC", []int64{b, c, a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := filterTransactions(r, token, tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			got := ids(resp)
			if fmt.Sprint(got) != fmt.Sprint(tt.expected) {
				t.Errorf("expected order %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFilterTransactionsHandler_FilterAlias(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	mustCreate(r, token, handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Snack", Date: "2024-05-01"})

	w := doRequest(r, http.MethodGet, "/api/transactions/filter?search=snack", token, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.TransactionsSearchResult
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 {
		t.Errorf("expected 1 row, got %d", len(resp.Data))
	}
}

func TestFilterTransactionsHandler_OnlyOwnRows(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	mustCreate(r, token, handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Alice's", Date: "2024-05-01"})
	mustCreate(r, otherToken, handler.TransactionRequest{Amount: "99", Type: "expense", Description: "Bob's", Date: "2024-05-01"})

	_, resp := filterTransactions(r, token, "")
	if len(resp.Data) != 1 || resp.Data[0].Description != "Alice's" {
		t.Fatalf("expected only alice's row, got %+v", resp.Data)
	}
	if !resp.Summary.TotalExpense.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected summary over own rows only, got %s", resp.Summary.TotalExpense)
	}
}

func TestFilterTransactionsHandler_Unauthorized(t *testing.T) {
	r := api.NewRouter()

	tests := []struct {
		name string
		tok  string
	}{
		{"Missing token", ""},
		{"Garbage token", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := filterTransactions(r, tt.tok, "")
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestUpdateTransactionHandler(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	id := mustCreate(r, token, handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Snack", Date: "2024-05-01"})
	update := handler.TransactionRequest{Amount: "12", Type: "expense", CategoryID: categoryID(food), Description: "Bigger snack", Date: "2024-05-02"}

	body, _ := json.Marshal(update)
	w := doRequest(r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), token, bytes.NewReader(body), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	_, resp := filterTransactions(r, token, "")
	row := resp.Data[0]
	if row.Description != "Bigger snack" || !row.Amount.Equal(decimal.NewFromInt(12)) || row.TransactionDate != "2024-05-02" {
		t.Errorf("update not applied: %+v", row)
	}
	if row.CategoryName == nil || *row.CategoryName != "Food" {
		t.Errorf("expected category Food, got %v", row.CategoryName)
	}

	update.ID = id
	update.Description = "Via body id"
	w = postJSON(r, "/api/transactions/update", token, update)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for body id, got %d: %s", w.Code, w.Body.String())
	}
	_, resp = filterTransactions(r, token, "")
	if resp.Data[0].Description != "Via body id" {
		t.Errorf("expected body id update, got %q", resp.Data[0].Description)
	}
}

func TestUpdateTransactionHandler_Errors(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	id := mustCreate(r, token, handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Snack", Date: "2024-05-01"})
	valid := handler.TransactionRequest{Amount: "99", Type: "expense", Description: "Hijacked"}

	tests := []struct {
		name            string
		tok             string
		path            string
		payload         handler.TransactionRequest
		expectCode      int
		expectedMessage string
	}{
		{"Other user's transaction", otherToken, fmt.Sprintf("/api/transactions/%d", id), valid, http.StatusForbidden, "you do not have permission to modify this transaction"},
		{"Missing transaction", token, "/api/transactions/9999", valid, http.StatusNotFound, "transaction not found"},
		{"Validation runs before ownership", otherToken, fmt.Sprintf("/api/transactions/%d", id), handler.TransactionRequest{Type: "expense", Description: "Hijacked"}, http.StatusBadRequest, "amount must be greater than 0"},
		{"Invalid id", token, "/api/transactions/abc", valid, http.StatusBadRequest, "transaction id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			w := doRequest(r, http.MethodPut, tt.path, tt.tok, bytes.NewReader(body), "application/json")
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if msg := decodeError(w).Message; msg != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, msg)
			}
		})
	}

	_, resp := filterTransactions(r, token, "")
	if resp.Data[0].Description != "Snack" {
		t.Errorf("expected the transaction to be unchanged, got %q", resp.Data[0].Description)
	}
}

func TestDeleteTransactionHandler(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	id := mustCreate(r, token, handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Snack", Date: "2024-05-01"})

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), otherToken, nil, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user, got %d", w.Code)
	}

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), token, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, resp := filterTransactions(r, token, ""); len(resp.Data) != 0 {
		t.Errorf("expected no rows after delete, got %d", len(resp.Data))
	}

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), token, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestDeleteTransactionHandler_BodyID(t *testing.T) {
	t.Cleanup(clearAllTransactions)
	r := api.NewRouter()

	id := mustCreate(r, token, handler.TransactionRequest{Amount: "10", Type: "expense", Description: "Snack", Date: "2024-05-01"})

	w := postForm(r, "/api/transactions/delete", token, "id="+fmt.Sprint(id))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/api/transactions/delete", token, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without an id, got %d", w.Code)
	}
}
