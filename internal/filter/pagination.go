package filter

// Pagination describes where a page sits within a filtered result set.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	TotalPages  int  `json:"total_pages"`
	TotalRows   int  `json:"total_rows"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// Paginate clamps the requested page into the range the total allows.
// An empty result set reports page 1 of 0.
func Paginate(totalRows, pageSize, requestedPage int) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	p := Pagination{PerPage: pageSize, TotalRows: totalRows, CurrentPage: 1}
	if totalRows <= 0 {
		p.TotalRows = 0
		return p
	}

	p.TotalPages = (totalRows + pageSize - 1) / pageSize
	p.CurrentPage = min(max(requestedPage, 1), p.TotalPages)
	p.HasNext = p.CurrentPage < p.TotalPages
	p.HasPrev = p.CurrentPage > 1
	return p
}

// Offset is the number of rows preceding the current page.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}
