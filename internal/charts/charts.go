// Package charts renders dashboard aggregates as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/ledger"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	width   = 1000
	height  = 500
	pieSize = height
)

// ExpenseByCategory draws a pie of expense shares. It returns nil when
// there is nothing to draw.
func ExpenseByCategory(list []models.CategoryExpense) ([]byte, error) {
	values := make([]chart.Value, 0, len(list))
	for _, ce := range list {
		if !ce.Total.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s%%)", ce.CategoryName, ce.Percentage.StringFixed(1)),
			Value: ce.Total.InexactFloat64(),
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Expenses by category",
		Width:  pieSize,
		Height: pieSize,
		Background: chart.Style{
			FillColor: chart.ColorWhite,
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyComparison draws income and expense lines per month. It returns
// nil when every month is empty.
func MonthlyComparison(months []models.MonthlyTotals) ([]byte, error) {
	xValues := make([]time.Time, 0, len(months))
	income := make([]float64, 0, len(months))
	expense := make([]float64, 0, len(months))

	empty := true
	for _, m := range months {
		t, err := time.Parse("2006-01", m.Month)
		if err != nil {
			return nil, fmt.Errorf("parse month %q: %w", m.Month, err)
		}
		xValues = append(xValues, t)
		income = append(income, m.TotalIncome.InexactFloat64())
		expense = append(expense, m.TotalExpense.InexactFloat64())
		if !m.TotalIncome.IsZero() || !m.TotalExpense.IsZero() {
			empty = false
		}
	}
	if empty || len(xValues) < 2 {
		return nil, nil
	}

	graph := chart.Chart{
		Title:  "Income vs expense",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v any) string {
				f, _ := v.(float64)
				return ledger.FormatAmount(decimal.NewFromFloat(f))
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: income,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Expense",
				XValues: xValues,
				YValues: expense,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
