package cvinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/talenthub/portal/recruitment/cv"
)

// RedisCleanupQueue implements cv.CleanupQueue using Redis
type RedisCleanupQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisCleanupQueue creates a new Redis-based cleanup queue
func NewRedisCleanupQueue(client *redis.Client, queueName string) *RedisCleanupQueue {
	return &RedisCleanupQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue schedules a remote delete retry
func (q *RedisCleanupQueue) Enqueue(ctx context.Context, job *cv.FileCleanupJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal cleanup job for %s: %w", job.FileID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue cleanup job for %s: %w", job.FileID, err)
	}

	return nil
}

// EnqueueDelayed schedules a retry after the given delay
func (q *RedisCleanupQueue) EnqueueDelayed(ctx context.Context, job *cv.FileCleanupJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed cleanup job for %s: %w", job.FileID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed cleanup job for %s: %w", job.FileID, err)
	}

	return nil
}

// Dequeue pops the next ready job (blocking with timeout)
func (q *RedisCleanupQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout elapses
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue cleanup job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// MoveDelayedToReady promotes delayed jobs whose time has come
func (q *RedisCleanupQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed cleanup jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, delayedQueue, job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed cleanup jobs to ready: %w", err)
	}

	return len(jobs), nil
}

// Size returns the number of ready jobs
func (q *RedisCleanupQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get cleanup queue size: %w", err)
	}
	return size, nil
}
