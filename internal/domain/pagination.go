package domain

// Paginate returns the 1-based page of items for the given page size:
// items[(page-1)*size : page*size], clipped to the slice.
// Out-of-range pages and non-positive arguments yield an empty, non-nil page.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	// compare page counts first so (page-1)*size cannot overflow
	pages := len(items) / size
	if len(items)%size != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * size
	end := len(items)
	if size < end-start {
		end = start + size
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
