package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/ports"
)

// dequeuePoll bounds how long one Dequeue call blocks before reporting
// an empty queue, so worker loops stay responsive to cancellation.
const dequeuePoll = 5 * time.Second

// RedisQueue is a list-backed task broker. Producers LPUSH JSON envelopes,
// the worker BRPOPs them; nothing flows back.
type RedisQueue struct {
	client *redis.Client
	key    string
	poll   time.Duration
}

var _ ports.TaskQueue = (*RedisQueue)(nil)

// NewRedisQueue connects to addr and stores tasks under key.
func NewRedisQueue(addr, key string) *RedisQueue {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisQueue{client: client, key: key, poll: dequeuePoll}
}

// Enqueue pushes one task envelope. The caller never learns whether the
// task eventually ran.
func (q *RedisQueue) Enqueue(ctx context.Context, task domain.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", task.Name, err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Name, err)
	}
	return nil
}

// Dequeue blocks up to the poll window for the next task. ok is false when
// the window elapsed with nothing queued.
func (q *RedisQueue) Dequeue(ctx context.Context) (domain.Task, bool, error) {
	res, err := q.client.BRPop(ctx, q.poll, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Task{}, false, nil
	}
	if err != nil {
		return domain.Task{}, false, fmt.Errorf("dequeue: %w", err)
	}

	var task domain.Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return domain.Task{}, false, fmt.Errorf("decode task: %w", err)
	}
	return task, true, nil
}

// Close releases the underlying connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}
