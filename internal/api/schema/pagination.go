package schema

import "github.com/videra/data-server/internal/pagination"

// ListResponse represents a unified paginated API response
type ListResponse[T any] struct {
	Data       []T                 `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
	Meta       pagination.Meta     `json:"meta"`
}

// BuildListResponse builds a unified paginated API response out of a page
func BuildListResponse[T any](page *pagination.Page[T]) *ListResponse[T] {
	data := page.Items
	if data == nil {
		data = []T{}
	}
	return &ListResponse[T]{
		Data:       data,
		Pagination: page.Pagination,
		Meta:       page.Meta,
	}
}

// Response represents a unified single resource API response
type Response[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// BuildResponse wraps a single resource into a unified API response
func BuildResponse[T any](data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Data:    data,
	}
}
