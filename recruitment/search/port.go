package search

import (
	"context"

	"github.com/talenthub/portal/pkg/kernel"
)

type Repository interface {
	// Create creates a new search
	Create(ctx context.Context, search *Search) error

	// Update updates an existing search
	Update(ctx context.Context, id kernel.SearchID, search *Search) error

	// GetByID retrieves a search by ID
	GetByID(ctx context.Context, id kernel.SearchID) (*Search, error)

	// Delete deletes a search by ID
	Delete(ctx context.Context, id kernel.SearchID) error

	// List retrieves all searches with pagination, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Search], error)

	// ListByStatus retrieves searches in the given status with pagination
	ListByStatus(ctx context.Context, status SearchStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[Search], error)

	// Exists checks if a search exists by ID
	Exists(ctx context.Context, id kernel.SearchID) (bool, error)
}
