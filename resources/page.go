// Package resources provides typed access to the paginated CRUD endpoints.
// All calls go through the gateway, so the renew-and-retry-once behavior
// covers every resource operation.
package resources

import "fmt"

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ListParams select a page of results. Zero values fall back to the server
// defaults (page 1, 10 items).
type ListParams struct {
	Page     int
	PageSize int
}

func (p ListParams) query() string {
	page := p.Page
	if page <= 0 {
		page = defaultPage
	}
	size := p.PageSize
	if size <= 0 {
		size = defaultPageSize
	}

	return fmt.Sprintf("?page=%d&page_size=%d", page, size)
}

// Page is the paginated response shape shared by every list endpoint.
type Page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}
