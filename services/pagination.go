package services

// Pagination bounds shared by every list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries the common query parameters of list endpoints.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

// Normalize fills zero values with defaults. Explicit out-of-range
// values are left for Validate to reject.
func (p *ListParams) Normalize() {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
}

// Validate rejects out-of-range page and limit values.
func (p ListParams) Validate() error {
	if p.Page < 1 {
		return InvalidArgument("Page must be at least 1")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return InvalidArgument("Limit must be between 1 and 100")
	}
	return nil
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
