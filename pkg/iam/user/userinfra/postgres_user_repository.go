package userinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talenthub/portal/pkg/iam/user"
	"github.com/talenthub/portal/pkg/kernel"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, phone, address, role, created_at, updated_at`

// FindByID retrieves an account by ID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u user.User
	err := r.db.GetContext(ctx, &u, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// FindByEmail retrieves an account by email
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u user.User
	err := r.db.GetContext(ctx, &u, query, string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}
