package application

import (
	"context"

	"github.com/talenthub/portal/pkg/kernel"
)

type Repository interface {
	// Create creates a new application
	Create(ctx context.Context, app *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// GetByIDAndOwner retrieves an application only when the given
	// user submitted it
	GetByIDAndOwner(ctx context.Context, id kernel.ApplicationID, ownerID kernel.UserID) (*Application, error)

	// UpdateState persists a state change
	UpdateState(ctx context.Context, app *Application) error

	// Delete removes an application permanently
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// ExistsBySearchAndCandidate checks whether the candidate already
	// applied to the search
	ExistsBySearchAndCandidate(ctx context.Context, searchID kernel.SearchID, candidateID kernel.UserID) (bool, error)

	// ListByCandidate lists the candidate's applications newest first,
	// with search details joined
	ListByCandidate(ctx context.Context, candidateID kernel.UserID) ([]MyApplicationRow, error)

	// AdminList lists applications newest first for staff review
	AdminList(ctx context.Context, filters AdminListFilters) ([]AdminApplicationRow, error)
}
