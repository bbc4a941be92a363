package trivia

import "strconv"

// PageSize is the fixed number of questions per listing page.
const PageSize = 10

// Paginate returns the 1-based page of items, clipped to the slice bounds.
// Items are assumed already ordered by ascending id. A page beyond the data
// yields an empty slice; whether that is an error is the caller's call.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return nil
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageCount reports how many pages a result set of the given size spans.
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// ParsePage interprets a raw page query parameter. Absent or unparseable
// values default to page 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
