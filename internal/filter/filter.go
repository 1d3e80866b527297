// Package filter turns raw listing query parameters into a normalized
// Spec. Parsing never fails: unusable values degrade to "no filter" or
// to the documented default.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortColumn is an allow-listed sort key. Only the repository maps it to SQL.
type SortColumn int

const (
	SortDate SortColumn = iota
	SortAmount
	SortKind
	SortCategoryName
	SortDescription
)

var sortColumns = map[string]SortColumn{
	"date":             SortDate,
	"transaction_date": SortDate,
	"amount":           SortAmount,
	"type":             SortKind,
	"category_name":    SortCategoryName,
	"description":      SortDescription,
}

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

type Sort struct {
	Column SortColumn
	Order  SortOrder
}

// Spec is a normalized listing request. Nil pointers impose no predicate.
type Spec struct {
	Kind       *models.Kind
	CategoryID *int64
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Sort       Sort
	Page       int
	Limit      int
}

// Defaults supplies the values FromValues cannot derive from the request.
type Defaults struct {
	Limit    int
	Now      time.Time
	Location *time.Location
}

// FromValues builds a Spec from query parameters.
func FromValues(q url.Values, d Defaults) Spec {
	if d.Limit <= 0 {
		d.Limit = DefaultLimit
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}

	var s Spec

	if k, ok := models.ParseKind(strings.TrimSpace(q.Get("type"))); ok {
		s.Kind = &k
	}

	if id, err := strconv.ParseInt(strings.TrimSpace(q.Get("category_id")), 10, 64); err == nil && id > 0 {
		s.CategoryID = &id
	}

	s.Search = strings.TrimSpace(q.Get("search"))

	s.DateFrom = parseDate(q.Get("date_from"), loc)
	s.DateTo = parseDate(q.Get("date_to"), loc)
	if s.DateFrom == nil && s.DateTo == nil {
		if from, to, ok := Preset(q.Get("range"), d.Now.In(loc)); ok {
			s.DateFrom, s.DateTo = &from, &to
		}
	}

	s.Sort = parseSort(q.Get("sort_by"), q.Get("sort_order"))

	s.Page = 1
	if p, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && p > 1 {
		s.Page = p
	}

	s.Limit = d.Limit
	if l, err := strconv.Atoi(strings.TrimSpace(q.Get("limit"))); err == nil {
		s.Limit = min(max(l, 1), MaxLimit)
	}

	return s
}

func parseSort(by, order string) Sort {
	o := Desc
	if SortOrder(strings.ToUpper(strings.TrimSpace(order))) == Asc {
		o = Asc
	}

	by = strings.TrimSpace(by)
	if by == "" {
		return Sort{Column: SortDate, Order: o}
	}
	col, ok := sortColumns[by]
	if !ok {
		// Unknown keys fall back to newest first, whatever the requested order.
		return Sort{Column: SortDate, Order: Desc}
	}
	return Sort{Column: col, Order: o}
}

func parseDate(v string, loc *time.Location) *time.Time {
	t, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(v), loc)
	if err != nil {
		return nil
	}
	return &t
}
