// Package pagination carries page/per_page parameters for ledger listings.
package pagination

const (
	DefaultPerPage = 20
	MaxPerPage     = 200
)

// Params is the requested page, bound from the query string.
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Default returns the first page at the default size.
func Default() *Params {
	return &Params{Page: 1, PerPage: DefaultPerPage}
}

// Normalize clamps the values into their valid ranges.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset is the number of rows to skip.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta describes the page that was returned.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewMeta builds page metadata for total rows.
func NewMeta(p *Params, total int64) *Meta {
	totalPages := 0
	if p.PerPage > 0 {
		totalPages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return &Meta{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
	}
}

// Page is a slice of results with its metadata.
type Page[T any] struct {
	Items []T   `json:"items"`
	Meta  *Meta `json:"pagination"`
}

// NewPage wraps items, never returning a nil slice.
func NewPage[T any](items []T, p *Params, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Meta: NewMeta(p, total)}
}
