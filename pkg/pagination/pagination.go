package pagination

import "math"

// Page describes one page of a listing
type Page struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// Params is bound from the page and per_page query parameters.
// A zero PerPage means the whole listing.
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Validate clamps the parameters into range
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Requested reports whether the caller asked for paging at all
func (p Params) Requested() bool {
	return p.PerPage > 0
}

// Offset is the index of the first item on the page, saturating at math.MaxInt
func (p Params) Offset() int {
	if p.Page < 1 || p.PerPage < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// NewPage computes page metadata for total items
func NewPage(page, perPage, total int) *Page {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return &Page{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Result is one page of items with its metadata
type Result[T any] struct {
	Items      []T   `json:"items"`
	Pagination *Page `json:"pagination"`
}

// Slice cuts one page out of an already ordered listing. Pages past the end are empty.
func Slice[T any](items []T, params Params) *Result[T] {
	params.Validate()
	if !params.Requested() {
		return &Result[T]{Items: items, Pagination: NewPage(1, len(items), len(items))}
	}

	start := params.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := len(items)
	if params.PerPage < end-start {
		end = start + params.PerPage
	}
	return &Result[T]{
		Items:      items[start:end],
		Pagination: NewPage(params.Page, params.PerPage, len(items)),
	}
}
