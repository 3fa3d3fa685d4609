package user

import (
	"context"

	"github.com/talenthub/portal/pkg/kernel"
)

type Repository interface {
	// FindByID retrieves an account by ID
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)

	// FindByEmail retrieves an account by email
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
}
