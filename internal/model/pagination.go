package model

// PageBounds returns the [start, end) slice bounds of page for total items,
// clamped to the collection, and the number of pages. Pages past the end, or below 1,
// yield an empty range at the end of the collection. No intermediate value overflows,
// whatever the page and size.
func PageBounds(total, page, pageSize int) (start, end, totalPages int) {
	if pageSize < 1 || total < 0 {
		return 0, 0, 0
	}
	totalPages = total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	if page < 1 || page > totalPages {
		return total, total, totalPages
	}
	// page-1 < totalPages, so start < total.
	start = (page - 1) * pageSize
	end = total
	if pageSize < total-start {
		end = start + pageSize
	}
	return start, end, totalPages
}
