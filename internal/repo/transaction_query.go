package repo

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/finance-tracker/internal/filter"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

const transactionFrom = `FROM transactions t LEFT JOIN categories c ON c.id = t.category_id`

const transactionColumns = `t.id, t.user_id, t.amount, t.type, t.category_id, t.description, t.transaction_date, t.created_at, c.name`

var orderColumns = map[filter.SortColumn]string{
	filter.SortDate:         "t.transaction_date",
	filter.SortAmount:       "t.amount",
	filter.SortKind:         "t.type",
	filter.SortCategoryName: "c.name",
	filter.SortDescription:  "t.description",
}

// Window bounds a listing. A zero Limit returns every matching row.
type Window struct {
	Limit  int
	Offset int
}

// buildWhereClause renders the owner predicate followed by f's
// optional predicates. Every value is bound as a positional parameter.
func buildWhereClause(userID int64, f filter.Spec) (string, []any) {
	args := []any{userID}
	where := "WHERE t.user_id = $1"

	add := func(format string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(format, len(args))
	}

	if f.Kind != nil {
		add(" AND t.type = $%d", string(*f.Kind))
	}
	if f.CategoryID != nil {
		add(" AND t.category_id = $%d", *f.CategoryID)
	}
	if f.Search != "" {
		add(` AND t.description ILIKE $%d ESCAPE '\'`, "%"+escapeLike(f.Search)+"%")
	}
	if f.DateFrom != nil {
		add(" AND t.transaction_date >= $%d::date", f.DateFrom.Format(models.DateLayout))
	}
	if f.DateTo != nil {
		add(" AND t.transaction_date <= $%d::date", f.DateTo.Format(models.DateLayout))
	}

	return where, args
}

func buildListQuery(userID int64, f filter.Spec, w Window) (string, []any) {
	where, args := buildWhereClause(userID, f)

	col, ok := orderColumns[f.Sort.Column]
	if !ok {
		col = orderColumns[filter.SortDate]
	}
	order := filter.Desc
	if f.Sort.Order == filter.Asc {
		order = filter.Asc
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY %s %s, t.id DESC", transactionColumns, transactionFrom, where, col, order)

	if w.Limit > 0 {
		args = append(args, w.Limit, w.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return query, args
}

func buildCountQuery(userID int64, f filter.Spec) (string, []any) {
	where, args := buildWhereClause(userID, f)
	return fmt.Sprintf("SELECT COUNT(*) %s %s", transactionFrom, where), args
}

func buildSummaryQuery(userID int64, f filter.Spec) (string, []any) {
	where, args := buildWhereClause(userID, f)
	query := fmt.Sprintf(`SELECT
		COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0)
		%s %s`, transactionFrom, where)
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
