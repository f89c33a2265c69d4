package handlers

import (
	"fmt"
	"math"
	"strconv"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// parsePageParams reads the 1-based pageNumber and pageSize listing params.
// Absent values fall back to the defaults; malformed values are an error.
func parsePageParams(pageStr, sizeStr string) (int64, int64, error) {
	page := int64(1)
	size := int64(defaultPageSize)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("invalid pageNumber")
		}
		page = p
	}

	if sizeStr != "" {
		s, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil || s < 1 {
			return 0, 0, fmt.Errorf("invalid pageSize")
		}
		if s > maxPageSize {
			s = maxPageSize
		}
		size = s
	}

	return page, size, nil
}

func totalPages(total, pageSize int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(pageSize)))
}
