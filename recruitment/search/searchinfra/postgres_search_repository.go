package searchinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/search"
)

// PostgresSearchRepository implements search.Repository using PostgreSQL
type PostgresSearchRepository struct {
	db *sqlx.DB
}

// NewPostgresSearchRepository creates a new PostgreSQL search repository
func NewPostgresSearchRepository(db *sqlx.DB) *PostgresSearchRepository {
	return &PostgresSearchRepository{db: db}
}

const searchColumns = `id, title, area, status, location, description, created_by, created_at, updated_at`

// Create creates a new search
func (r *PostgresSearchRepository) Create(ctx context.Context, s *search.Search) error {
	query := `
		INSERT INTO searches (
			id, title, area, status, location, description, created_by, created_at, updated_at
		) VALUES (
			:id, :title, :area, :status, :location, :description, :created_by, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return fmt.Errorf("failed to create search: %w", err)
	}

	return nil
}

// Update updates an existing search
func (r *PostgresSearchRepository) Update(ctx context.Context, id kernel.SearchID, s *search.Search) error {
	query := `
		UPDATE searches SET
			title = :title,
			area = :area,
			status = :status,
			location = :location,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return fmt.Errorf("failed to update search: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return search.ErrSearchNotFound()
	}

	return nil
}

// GetByID retrieves a search by ID
func (r *PostgresSearchRepository) GetByID(ctx context.Context, id kernel.SearchID) (*search.Search, error) {
	query := `SELECT ` + searchColumns + ` FROM searches WHERE id = $1`

	var s search.Search
	err := r.db.GetContext(ctx, &s, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, search.ErrSearchNotFound()
		}
		return nil, fmt.Errorf("failed to get search by id: %w", err)
	}

	return &s, nil
}

// Delete deletes a search by ID
func (r *PostgresSearchRepository) Delete(ctx context.Context, id kernel.SearchID) error {
	query := `DELETE FROM searches WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return search.ErrSearchNotFound()
	}

	return nil
}

// List retrieves all searches with pagination
func (r *PostgresSearchRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[search.Search], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM searches`); err != nil {
		return nil, fmt.Errorf("failed to count searches: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `SELECT ` + searchColumns + `
		FROM searches
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var items []search.Search
	if err := r.db.SelectContext(ctx, &items, query, pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}

	return &kernel.Paginated[search.Search]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(items) == 0,
	}, nil
}

// ListByStatus retrieves searches in the given status with pagination
func (r *PostgresSearchRepository) ListByStatus(ctx context.Context, status search.SearchStatus, pagination kernel.PaginationOptions) (*kernel.Paginated[search.Search], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM searches WHERE status = $1`, string(status)); err != nil {
		return nil, fmt.Errorf("failed to count searches by status: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `SELECT ` + searchColumns + `
		FROM searches
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var items []search.Search
	if err := r.db.SelectContext(ctx, &items, query, string(status), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list searches by status: %w", err)
	}

	return &kernel.Paginated[search.Search]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(items) == 0,
	}, nil
}

// Exists checks if a search exists by ID
func (r *PostgresSearchRepository) Exists(ctx context.Context, id kernel.SearchID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM searches WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(id)); err != nil {
		return false, fmt.Errorf("failed to check search existence: %w", err)
	}

	return exists, nil
}
