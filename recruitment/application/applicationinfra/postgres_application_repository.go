package applicationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/application"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, search_id, candidate_id, message, cv_snapshot, state, created_at, updated_at`

// Create creates a new application. The (search_id, candidate_id)
// unique index keeps the one-application-per-search invariant under
// concurrent submits.
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, search_id, candidate_id, message, cv_snapshot, state, created_at, updated_at
		) VALUES (
			:id, :search_id, :candidate_id, :message, :cv_snapshot, :state, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return application.ErrAlreadyApplied().
					WithDetail("search_id", app.SearchID.String())
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid foreign key reference: %w", err)
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var app application.Application
	err := r.db.GetContext(ctx, &app, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return &app, nil
}

// GetByIDAndOwner retrieves an application only when the given user
// submitted it. A foreign application is indistinguishable from a
// missing one.
func (r *PostgresApplicationRepository) GetByIDAndOwner(ctx context.Context, id kernel.ApplicationID, ownerID kernel.UserID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND candidate_id = $2`

	var app application.Application
	err := r.db.GetContext(ctx, &app, query, id.String(), ownerID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id and owner: %w", err)
	}

	return &app, nil
}

// UpdateState persists a state change
func (r *PostgresApplicationRepository) UpdateState(ctx context.Context, app *application.Application) error {
	query := `
		UPDATE applications SET
			state = :state,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		return fmt.Errorf("failed to update application state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// Delete removes an application permanently
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// ExistsBySearchAndCandidate checks whether the candidate already
// applied to the search
func (r *PostgresApplicationRepository) ExistsBySearchAndCandidate(ctx context.Context, searchID kernel.SearchID, candidateID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE search_id = $1 AND candidate_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, searchID.String(), candidateID.String())
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// ListByCandidate lists the candidate's applications newest first,
// with search details joined
func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID kernel.UserID) ([]application.MyApplicationRow, error) {
	query := `
		SELECT
			a.id, a.search_id, a.state, a.created_at,
			s.title AS search_title,
			s.area AS search_area,
			s.status AS search_status,
			s.location AS search_location
		FROM applications a
		INNER JOIN searches s ON a.search_id = s.id
		WHERE a.candidate_id = $1
		ORDER BY a.created_at DESC
	`

	rows := []application.MyApplicationRow{}
	err := r.db.SelectContext(ctx, &rows, query, candidateID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by candidate: %w", err)
	}

	return rows, nil
}

// AdminList lists applications newest first for staff review. The
// free-text filter matches the frozen snapshot, not the live CV, so
// results reflect what was actually submitted.
func (r *PostgresApplicationRepository) AdminList(ctx context.Context, filters application.AdminListFilters) ([]application.AdminApplicationRow, error) {
	query := `
		SELECT
			a.id, a.search_id, a.candidate_id, a.message, a.cv_snapshot, a.state, a.created_at,
			s.title AS search_title,
			u.email AS candidate_email,
			c.id AS current_cv_id
		FROM applications a
		INNER JOIN searches s ON a.search_id = s.id
		INNER JOIN users u ON a.candidate_id = u.id
		LEFT JOIN cvs c ON c.user_id = a.candidate_id
	`

	conditions := []string{}
	args := []any{}

	if filters.State != "" {
		args = append(args, string(filters.State))
		conditions = append(conditions, fmt.Sprintf("a.state = $%d", len(args)))
	}
	if !filters.SearchID.IsEmpty() {
		args = append(args, filters.SearchID.String())
		conditions = append(conditions, fmt.Sprintf("a.search_id = $%d", len(args)))
	}
	if filters.Query != "" {
		args = append(args, "%"+escapeLike(filters.Query)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(`(
			a.cv_snapshot->>'first_name' ILIKE $%d OR
			a.cv_snapshot->>'last_name' ILIKE $%d OR
			a.cv_snapshot->>'email' ILIKE $%d OR
			a.message ILIKE $%d
		)`, n, n, n, n))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC"

	rows := []application.AdminApplicationRow{}
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return rows, nil
}

// escapeLike neutralizes LIKE metacharacters so user input is matched
// literally
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
