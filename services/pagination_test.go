package services

import "testing"

func TestListParamsNormalize(t *testing.T) {
	p := ListParams{}
	p.Normalize()
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Errorf("got page=%d limit=%d, want defaults %d/%d", p.Page, p.Limit, DefaultPage, DefaultLimit)
	}

	// Explicit values survive normalization, even out-of-range ones.
	p = ListParams{Page: 3, Limit: 25}
	p.Normalize()
	if p.Page != 3 || p.Limit != 25 {
		t.Errorf("explicit values changed: page=%d limit=%d", p.Page, p.Limit)
	}

	p = ListParams{Page: -1, Limit: 500}
	p.Normalize()
	if p.Page != -1 || p.Limit != 500 {
		t.Errorf("out-of-range values changed before validation: page=%d limit=%d", p.Page, p.Limit)
	}
}

func TestListParamsValidate(t *testing.T) {
	ok := ListParams{Page: 1, Limit: 100}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}

	badPage := ListParams{Page: 0, Limit: 10}
	expectInvalidArgument(t, badPage.Validate(), "Page must be at least 1")

	negativePage := ListParams{Page: -2, Limit: 10}
	expectInvalidArgument(t, negativePage.Validate(), "Page must be at least 1")

	zeroLimit := ListParams{Page: 1, Limit: 0}
	expectInvalidArgument(t, zeroLimit.Validate(), "Limit must be between 1 and 100")

	overLimit := ListParams{Page: 1, Limit: 101}
	expectInvalidArgument(t, overLimit.Validate(), "Limit must be between 1 and 100")
}

func TestListParamsOffset(t *testing.T) {
	// 25 rows at 10 per page: page 2 starts at row 10 and page 3 at 20.
	p := ListParams{Page: 2, Limit: 10}
	if got := p.Offset(); got != 10 {
		t.Errorf("page 2 offset = %d, want 10", got)
	}

	p.Page = 3
	if got := p.Offset(); got != 20 {
		t.Errorf("page 3 offset = %d, want 20", got)
	}

	p = ListParams{Page: 1, Limit: 100}
	if got := p.Offset(); got != 0 {
		t.Errorf("first page offset = %d, want 0", got)
	}
}
