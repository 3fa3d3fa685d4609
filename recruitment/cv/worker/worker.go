package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/talenthub/portal/pkg/fsx"
	"github.com/talenthub/portal/pkg/logx"
	"github.com/talenthub/portal/recruitment/cv"
)

const maxCleanupAttempts = 5

// CleanupWorker retries remote deletes of orphaned provider files.
// Jobs land on the queue whenever a synchronous delete fails; the
// worker re-attempts with a growing backoff and gives up after
// maxCleanupAttempts.
type CleanupWorker struct {
	storage fsx.FileStorage
	queue   cv.CleanupQueue
	workers int
}

func NewCleanupWorker(storage fsx.FileStorage, queue cv.CleanupQueue, workers int) *CleanupWorker {
	return &CleanupWorker{
		storage: storage,
		queue:   queue,
		workers: workers,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d file cleanup workers", w.workers)

	// Start delayed job mover
	go w.moveDelayedJobs(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *CleanupWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Cleanup worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Cleanup worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Cleanup worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, no jobs available
			if len(data) == 0 {
				continue
			}

			var job cv.FileCleanupJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Cleanup worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			w.handleJob(ctx, workerID, &job)
		}
	}
}

func (w *CleanupWorker) handleJob(ctx context.Context, workerID int, job *cv.FileCleanupJob) {
	if w.storage.Delete(ctx, job.FileID) {
		logx.Infof("Cleanup worker %d deleted file %s", workerID, job.FileID)
		return
	}

	job.AttemptCount++
	if job.AttemptCount >= maxCleanupAttempts {
		logx.Errorf("Cleanup worker %d giving up on file %s after %d attempts", workerID, job.FileID, job.AttemptCount)
		return
	}

	delay := time.Duration(job.AttemptCount) * time.Minute
	if err := w.queue.EnqueueDelayed(ctx, job, delay); err != nil {
		logx.Errorf("Cleanup worker %d failed to requeue file %s: %v", workerID, job.FileID, err)
		return
	}
	logx.Infof("Cleanup worker %d requeued file %s (attempt %d, retry in %s)", workerID, job.FileID, job.AttemptCount, delay)
}

func (w *CleanupWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed cleanup jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed cleanup jobs to ready queue", count)
			}
		}
	}
}
