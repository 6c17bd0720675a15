package store

// DefaultPageSize is the number of items per page for listings.
const DefaultPageSize = 5

// PageParams contains page-number pagination request parameters.
type PageParams struct {
	Page     int // 1-based page number
	PageSize int // Items per page (defaults to DefaultPageSize)
}

// Normalize corrects out-of-range pagination parameters in place.
// Page numbers below 1 become 1; a non-positive size gets the default.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
}

// PagedResult contains one page of items plus listing metadata.
type PagedResult[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
}

// slicePage returns the half-open index range [start, end) for the
// requested page of a collection with total items. A page past the end
// yields an empty range.
func slicePage(total int, p PageParams) (start, end int) {
	start = (p.Page - 1) * p.PageSize
	if start >= total {
		return total, total
	}
	end = start + p.PageSize
	if end > total {
		end = total
	}
	return start, end
}

// totalPages returns how many pages a collection of total items spans.
// An empty collection still has zero pages.
func totalPages(total, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// paginate slices items into a PagedResult for the given parameters.
func paginate[T any](items []T, p PageParams) PagedResult[T] {
	p.Normalize()
	start, end := slicePage(len(items), p)
	return PagedResult[T]{
		Items:      items[start:end],
		Page:       p.Page,
		TotalPages: totalPages(len(items), p.PageSize),
		Total:      len(items),
	}
}
