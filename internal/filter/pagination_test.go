package filter

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                 string
		total, size, request int
		want                 Pagination
	}{
		{"empty", 0, 10, 3, Pagination{CurrentPage: 1, PerPage: 10}},
		{"first page", 25, 10, 1, Pagination{CurrentPage: 1, PerPage: 10, TotalPages: 3, TotalRows: 25, HasNext: true}},
		{"middle", 25, 10, 2, Pagination{CurrentPage: 2, PerPage: 10, TotalPages: 3, TotalRows: 25, HasNext: true, HasPrev: true}},
		{"last", 25, 10, 3, Pagination{CurrentPage: 3, PerPage: 10, TotalPages: 3, TotalRows: 25, HasPrev: true}},
		{"past the end", 25, 10, 9, Pagination{CurrentPage: 3, PerPage: 10, TotalPages: 3, TotalRows: 25, HasPrev: true}},
		{"below one", 5, 10, -2, Pagination{CurrentPage: 1, PerPage: 10, TotalPages: 1, TotalRows: 5}},
		{"exact fit", 20, 10, 2, Pagination{CurrentPage: 2, PerPage: 10, TotalPages: 2, TotalRows: 20, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.total, tt.size, tt.request)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPaginate_Bounds(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for _, size := range []int{1, 7, 10, 100} {
			for _, page := range []int{-1, 0, 1, 2, 5, 50} {
				p := Paginate(total, size, page)
				if p.CurrentPage < 1 {
					t.Fatalf("page below 1 for total=%d size=%d page=%d", total, size, page)
				}
				if total > 0 && p.CurrentPage > p.TotalPages {
					t.Fatalf("page past the end for total=%d size=%d page=%d", total, size, page)
				}
				if p.HasNext != (p.CurrentPage < p.TotalPages) || p.HasPrev != (p.CurrentPage > 1) {
					t.Fatalf("inconsistent flags %+v", p)
				}
			}
		}
	}
}

func TestPagination_Offset(t *testing.T) {
	if got := Paginate(25, 10, 3).Offset(); got != 20 {
		t.Errorf("expected offset 20, got %d", got)
	}
	if got := Paginate(0, 10, 3).Offset(); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
}
