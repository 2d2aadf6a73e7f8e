package table

const pageWindow = 5

// ClampPage keeps page inside [1, totalPages], or at 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}

	if page > totalPages {
		return totalPages
	}

	return page
}

// PageNumbers returns up to five consecutive page numbers centered on
// current. The window keeps its full width whenever there are enough pages.
func PageNumbers(current, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}

	start := max(1, current-pageWindow/2)
	end := min(totalPages, start+pageWindow-1)
	if end-start+1 < pageWindow {
		start = max(1, end-pageWindow+1)
	}

	numbers := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		numbers = append(numbers, n)
	}

	return numbers
}
