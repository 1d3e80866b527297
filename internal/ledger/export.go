package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
	"github.com/shopspring/decimal"
)

const utf8BOM = "\xEF\xBB\xBF"

// ExportFilename names an export produced now.
func (s *Service) ExportFilename() string {
	return "transactions-" + s.Now().Format("2006-01-02_150405") + ".csv"
}

// Export writes every row matching f, in f's order, as a spreadsheet-friendly
// CSV preceded by a summary block. Paging fields of f are ignored.
func (s *Service) Export(ctx context.Context, w io.Writer, userID int64, f filter.Spec) error {
	rows, err := s.transactions.List(ctx, userID, f, repo.Window{})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	var summary models.Summary
	for _, r := range rows {
		if r.Kind == models.Income {
			summary.TotalIncome = summary.TotalIncome.Add(r.Amount)
		} else {
			summary.TotalExpense = summary.TotalExpense.Add(r.Amount)
		}
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	records := [][]string{
		{"Total Income", FormatAmount(summary.TotalIncome)},
		{"Total Expense", FormatAmount(summary.TotalExpense)},
		{"Balance", FormatAmount(summary.Balance())},
		{"Total Transactions", strconv.Itoa(len(rows))},
		{"Exported At", s.Now().Format("02/01/2006 15:04:05")},
		{},
		{"No", "Date", "Type", "Category", "Amount", "Description"},
	}
	for i, r := range rows {
		category := models.Uncategorized
		if r.CategoryName != nil {
			category = *r.CategoryName
		}
		kind := "Expense"
		if r.Kind == models.Income {
			kind = "Income"
		}
		records = append(records, []string{
			strconv.Itoa(i + 1),
			r.Date.Format("02/01/2006"),
			kind,
			category,
			FormatAmount(r.Amount),
			r.Description,
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// FormatAmount rounds to whole units and groups thousands with dots,
// e.g. 1234567.5 becomes "1.234.568".
func FormatAmount(d decimal.Decimal) string {
	digits := d.Abs().Round(0).String()

	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}
