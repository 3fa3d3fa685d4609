package search

import (
	"github.com/talenthub/portal/pkg/kernel"
)

// CreateSearchRequest - DTO for creating a new search
type CreateSearchRequest struct {
	Title       kernel.SearchTitle       `json:"title" validate:"required"`
	Area        kernel.SearchArea        `json:"area" validate:"required"`
	Location    kernel.SearchLocation    `json:"location,omitempty"`
	Description kernel.SearchDescription `json:"description,omitempty"`
}

// UpdateSearchRequest - DTO for updating an existing search
type UpdateSearchRequest struct {
	Title       *kernel.SearchTitle       `json:"title,omitempty"`
	Area        *kernel.SearchArea        `json:"area,omitempty"`
	Location    *kernel.SearchLocation    `json:"location,omitempty"`
	Description *kernel.SearchDescription `json:"description,omitempty"`
	Status      *SearchStatus             `json:"status,omitempty"`
}

// PaginatedSearchesResponse - paginated list of searches
type PaginatedSearchesResponse = kernel.Paginated[Search]
