package kernel

// Page holds pagination metadata.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated is a generic container for one page of results.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"pagination"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a paginated result, deriving the page count.
func NewPaginated[T any](items []T, page, size, total int) Paginated[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Paginated[T]{
		Items: items,
		Page:  Page{Number: page, Size: size, Total: total, Pages: pages},
		Empty: len(items) == 0,
	}
}

// HasNext reports whether pages exist after the current one.
func (p Paginated[T]) HasNext() bool { return p.Page.Number < p.Page.Pages }

// HasPrevious reports whether pages exist before the current one.
func (p Paginated[T]) HasPrevious() bool { return p.Page.Number > 1 }

// PaginationOptions carries page/size query options. Zero values are
// normalized by Normalize.
type PaginationOptions struct {
	Page     int
	PageSize int
}

// Normalize clamps the options to sane bounds.
func (o PaginationOptions) Normalize() PaginationOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = 20
	}
	if o.PageSize > 100 {
		o.PageSize = 100
	}
	return o
}

// Offset returns the SQL offset for the current page.
func (o PaginationOptions) Offset() int { return (o.Page - 1) * o.PageSize }
