package pagination

import (
	"fmt"
	"math"
)

// Window returns the page count and the "21-40 of 150" label for a listing.
func Window(total int64, page, limit int) (totalPages int, showing string) {
	if total == 0 || limit <= 0 {
		return 0, "0 of 0"
	}
	totalPages = int(math.Ceil(float64(total) / float64(limit)))
	from := (page-1)*limit + 1
	to := min(page*limit, int(total))
	if from > int(total) {
		return totalPages, fmt.Sprintf("0 of %d", total)
	}
	return totalPages, fmt.Sprintf("%d-%d of %d", from, to, total)
}

// Bounds returns the slice indexes of a page over n items. A non-positive
// limit selects everything.
func Bounds(n, page, limit int) (start, end int) {
	if limit <= 0 {
		return 0, n
	}
	if page < 1 {
		page = 1
	}
	start = (page - 1) * limit
	if start > n {
		start = n
	}
	end = min(start+limit, n)
	return start, end
}

// Offset converts page/limit into a SQL OFFSET.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
