package query

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// Page is a pagination window. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// PageParams are the raw page[number] and page[size] values.
type PageParams struct {
	Number string
	Size   string
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// LastPage returns the last page number for total rows, at least 1.
func (p Page) LastPage(total int64) int {
	if total <= 0 || p.Size <= 0 {
		return 1
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// ParsePage applies defaults and bounds. A maxSize <= 0 falls back to MaxPageSize.
func ParsePage(raw PageParams, maxSize int) (Page, error) {
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	page := Page{Number: 1, Size: DefaultPageSize}
	if page.Size > maxSize {
		page.Size = maxSize
	}
	if s := strings.TrimSpace(raw.Number); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Page{}, invalid("page[number]", "must be a positive integer")
		}
		page.Number = n
	}
	if s := strings.TrimSpace(raw.Size); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxSize {
			return Page{}, invalid("page[size]", "must be an integer between 1 and %d", maxSize)
		}
		page.Size = n
	}
	// the offset of the last reachable page must fit in an int
	if page.Number-1 > math.MaxInt/page.Size {
		return Page{}, invalid("page[number]", "must be at most %d", math.MaxInt/page.Size+1)
	}
	return page, nil
}
