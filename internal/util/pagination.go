package util

import "strconv"

const (
	DefaultPageSize = 12
	WidgetPageSize  = 5
	maxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > maxPageSize {
		size = DefaultPageSize
	}

	offset = (page - 1) * size
	return offset, size
}

// TotalPages never reports zero pages so callers can render page 1 of an
// empty result set.
func TotalPages(total int64, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	pages := (total + int64(size) - 1) / int64(size)
	if pages < 1 {
		pages = 1
	}
	return int(pages)
}
