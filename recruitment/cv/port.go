package cv

import (
	"context"
	"time"

	"github.com/talenthub/portal/pkg/kernel"
)

type Repository interface {
	// Create creates a new CV record
	Create(ctx context.Context, record *CvRecord) error

	// Update updates an existing CV record
	Update(ctx context.Context, id kernel.CvID, record *CvRecord) error

	// GetByID retrieves a CV record by ID
	GetByID(ctx context.Context, id kernel.CvID) (*CvRecord, error)

	// GetByUserID retrieves the CV record owned by the given user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*CvRecord, error)

	// ExistsByUserID checks whether the user already has a CV record
	ExistsByUserID(ctx context.Context, userID kernel.UserID) (bool, error)
}

// CleanupQueue holds provider file ids whose remote delete failed, so
// a background worker can retry out-of-band. Local state stays
// authoritative either way.
type CleanupQueue interface {
	// Enqueue schedules a remote delete retry
	Enqueue(ctx context.Context, job *FileCleanupJob) error

	// EnqueueDelayed schedules a retry after the given delay
	EnqueueDelayed(ctx context.Context, job *FileCleanupJob, delay time.Duration) error

	// Dequeue pops the next ready job, blocking up to timeout;
	// returns nil when none is available
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// MoveDelayedToReady promotes delayed jobs whose time has come
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready jobs
	Size(ctx context.Context) (int64, error)
}

// FileCleanupJob is the queue payload for one orphaned provider file
type FileCleanupJob struct {
	FileID       kernel.FileID `json:"file_id"`
	AttemptCount int           `json:"attempt_count"`
	EnqueuedAt   time.Time     `json:"enqueued_at"`
}
