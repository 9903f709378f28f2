package render

// Window is one page of a longer list. Only the items of the current page
// are rendered; the totals drive the pager line.
type Window[T any] struct {
	Items    []T
	Page     int // 1-based, clamped to the last page
	Pages    int
	PageSize int
	Total    int
	Offset   int
}

// Paginate cuts the page-th window of size items out of all. Out-of-range
// pages clamp to the nearest valid page; an empty list has one empty page.
func Paginate[T any](all []T, page, size int) Window[T] {
	if size < 1 {
		size = 1
	}
	pages := (len(all) + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	offset := (page - 1) * size
	end := offset + size
	if end > len(all) {
		end = len(all)
	}

	return Window[T]{
		Items:    all[offset:end],
		Page:     page,
		Pages:    pages,
		PageSize: size,
		Total:    len(all),
		Offset:   offset,
	}
}

// HasNext reports whether a later page exists
func (w Window[T]) HasNext() bool {
	return w.Page < w.Pages
}
