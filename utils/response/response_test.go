package response

import "testing"

func TestCalculatePagination(t *testing.T) {
	// 25 rows at 10 per page round up to 3 pages.
	meta := CalculatePagination(2, 10, 25)
	if meta.TotalItems != 25 || meta.TotalPages != 3 || meta.CurrentPage != 2 || meta.ItemsPerPage != 10 {
		t.Errorf("got %+v, want 25 items over 3 pages, page 2 of 10", meta)
	}

	// Exact division adds no extra page.
	meta = CalculatePagination(1, 10, 30)
	if meta.TotalPages != 3 {
		t.Errorf("30 rows at 10 per page = %d pages, want 3", meta.TotalPages)
	}

	// An empty result set still reports the requested page.
	meta = CalculatePagination(1, 10, 0)
	if meta.TotalItems != 0 || meta.TotalPages != 0 || meta.CurrentPage != 1 {
		t.Errorf("got %+v, want zero items and pages on page 1", meta)
	}

	// Out-of-range inputs fall back to page 1, limit 10.
	meta = CalculatePagination(0, -5, 25)
	if meta.CurrentPage != 1 || meta.ItemsPerPage != 10 || meta.TotalPages != 3 {
		t.Errorf("got %+v, want defaults applied", meta)
	}
}
