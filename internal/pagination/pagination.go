// Package pagination computes page windows over ordered result sets.
//
// Every list endpoint shares the same contract: a 1-based page number and a
// page size go in, an offset for the SQL query and a descriptor for the
// response come out. Requesting a page past the end is not an error; it
// yields an empty window with a valid descriptor.
package pagination

const (
	// DefaultPerPage is used when the caller does not ask for a page size.
	DefaultPerPage = 100
	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// Request is a normalized page request.
type Request struct {
	Page    int
	PerPage int
}

// NewRequest clamps page to >= 1 and perPage to [1, MaxPerPage]; a
// non-positive perPage falls back to DefaultPerPage.
func NewRequest(page, perPage int) Request {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Request{Page: page, PerPage: perPage}
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// Limit returns the number of rows to fetch.
func (r Request) Limit() int {
	return r.PerPage
}

// Pagination is the descriptor returned alongside every list.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

// Describe builds the descriptor for a request over total items.
func (r Request) Describe(total int64) Pagination {
	return Pagination{
		CurrentPage:  r.Page,
		TotalPages:   TotalPages(total, r.PerPage),
		TotalItems:   total,
		ItemsPerPage: r.PerPage,
	}
}

// TotalPages is ceil(total/perPage), 0 for an empty set.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Page is an item window plus its descriptor.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage wraps items, substituting an empty slice for nil so the JSON
// encoding is always an array.
func NewPage[T any](items []T, req Request, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: req.Describe(total)}
}
