package domain

// PageSize is the number of records shown per page in every collection.
const PageSize = 10

// TotalPages returns ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate returns the 1-based page of seq and the total page count.
//
// Out-of-range page numbers (including page < 1) yield an empty slice,
// never an error: callers own clamping.
func Paginate[T any](seq []T, size, page int) ([]T, int) {
	if size <= 0 {
		size = PageSize
	}
	total := TotalPages(len(seq), size)

	// Checked before multiplying so huge page numbers cannot overflow.
	if page < 1 || page > total {
		return []T{}, total
	}
	start := (page - 1) * size
	if start >= len(seq) {
		return []T{}, total
	}
	end := start + size
	if end > len(seq) {
		end = len(seq)
	}
	// Cap the capacity so appends by callers never touch the source.
	return seq[start:end:end], total
}
