// Package pagination provides offset-based pagination utilities.
// Pages are 1-based; the offset for a page is pageSize*(page-1). Offset
// pagination is not stable under concurrent inserts: a matching row created
// between two page fetches can shift boundaries and duplicate or skip items
// across pages. Callers accept that trade for simple client-side page math.
package pagination

import (
	"fmt"
)

const (
	// DefaultPageSize is the page size used when the caller passes zero
	DefaultPageSize = 20
	// MaxPageSize is the server-side backstop for the page size
	MaxPageSize = 100
)

// Params holds validated offset pagination parameters.
type Params struct {
	Page     int
	PageSize int
}

// Validate checks the caller contract: page and page size must both be >= 1.
// Violations are rejected, never clamped.
func (p Params) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", p.Page)
	}
	if p.PageSize < 1 {
		return fmt.Errorf("page size must be >= 1, got %d", p.PageSize)
	}
	return nil
}

// Offset returns the number of rows to skip for this page.
func (p Params) Offset() int {
	return p.PageSize * (p.Page - 1)
}

// ClampPageSize bounds a requested page size; zero or negative values fall
// back to the default.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages returns the number of pages needed to cover total rows.
func TotalPages(total int64, pageSize int) int64 {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
