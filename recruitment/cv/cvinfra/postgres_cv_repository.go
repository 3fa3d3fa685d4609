package cvinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/cv"
)

// PostgresCvRepository implements cv.Repository using PostgreSQL
type PostgresCvRepository struct {
	db *sqlx.DB
}

// NewPostgresCvRepository creates a new PostgreSQL CV repository
func NewPostgresCvRepository(db *sqlx.DB) *PostgresCvRepository {
	return &PostgresCvRepository{db: db}
}

const cvColumns = `id, user_id, first_name, last_name, email, phone, linkedin, website, summary,
			education, experience, document, created_at, updated_at`

// Create creates a new CV record. The users_id unique index keeps the
// one-record-per-user invariant under concurrent creates.
func (r *PostgresCvRepository) Create(ctx context.Context, record *cv.CvRecord) error {
	query := `
		INSERT INTO cvs (
			id, user_id, first_name, last_name, email, phone, linkedin, website, summary,
			education, experience, document, created_at, updated_at
		) VALUES (
			:id, :user_id, :first_name, :last_name, :email, :phone, :linkedin, :website, :summary,
			:education, :experience, :document, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return fmt.Errorf("cv already exists for user %s: %w", record.UserID, err)
		}
		return fmt.Errorf("failed to create cv: %w", err)
	}

	return nil
}

// Update updates an existing CV record
func (r *PostgresCvRepository) Update(ctx context.Context, id kernel.CvID, record *cv.CvRecord) error {
	query := `
		UPDATE cvs SET
			first_name = :first_name,
			last_name = :last_name,
			email = :email,
			phone = :phone,
			linkedin = :linkedin,
			website = :website,
			summary = :summary,
			education = :education,
			experience = :experience,
			document = :document,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to update cv: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return cv.ErrCvNotFound()
	}

	return nil
}

// GetByID retrieves a CV record by ID
func (r *PostgresCvRepository) GetByID(ctx context.Context, id kernel.CvID) (*cv.CvRecord, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE id = $1`

	var record cv.CvRecord
	err := r.db.GetContext(ctx, &record, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cv.ErrCvNotFound()
		}
		return nil, fmt.Errorf("failed to get cv by id: %w", err)
	}

	return &record, nil
}

// GetByUserID retrieves the CV record owned by the given user
func (r *PostgresCvRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*cv.CvRecord, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE user_id = $1`

	var record cv.CvRecord
	err := r.db.GetContext(ctx, &record, query, string(userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, cv.ErrCvNotFound()
		}
		return nil, fmt.Errorf("failed to get cv by user id: %w", err)
	}

	return &record, nil
}

// ExistsByUserID checks whether the user already has a CV record
func (r *PostgresCvRepository) ExistsByUserID(ctx context.Context, userID kernel.UserID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cvs WHERE user_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(userID)); err != nil {
		return false, fmt.Errorf("failed to check cv existence: %w", err)
	}

	return exists, nil
}
