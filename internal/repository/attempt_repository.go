package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AttemptRepository tracks the ephemeral state of one learner exploring
// one task: how many times in a row they submitted a wrong answer. The
// counters live in Redis with a TTL, never in the database — an attempt
// is not progress.
//
// Each owner (user or anonymous session) has a "current task" tag.
// Switching tasks discards the previous counter, so a stale streak can
// never leak into a task the learner has navigated away from.
type AttemptRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewAttemptRepository(rdb *redis.Client, ttl time.Duration) *AttemptRepository {
	return &AttemptRepository{Redis: rdb, TTL: ttl}
}

func (r *AttemptRepository) counterKey(owner, taskID string) string {
	return fmt.Sprintf("attempt:wrong:%s:%s", owner, taskID)
}

func (r *AttemptRepository) currentKey(owner string) string {
	return fmt.Sprintf("attempt:current:%s", owner)
}

// Touch marks taskID as the owner's current task. If the owner was on a
// different task, that task's wrong-answer counter is dropped.
func (r *AttemptRepository) Touch(ctx context.Context, owner, taskID string) error {
	if r.Redis == nil {
		return nil
	}

	current, err := r.Redis.Get(ctx, r.currentKey(owner)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if current != "" && current != taskID {
		if err := r.Redis.Del(ctx, r.counterKey(owner, current)).Err(); err != nil {
			return err
		}
	}
	return r.Redis.Set(ctx, r.currentKey(owner), taskID, r.TTL).Err()
}

// IncrWrong bumps the consecutive-failure counter and returns the new
// value. INCR is atomic on the Redis side, so racing submits still count
// each failure once.
func (r *AttemptRepository) IncrWrong(ctx context.Context, owner, taskID string) (int, error) {
	if r.Redis == nil {
		return 0, nil
	}

	key := r.counterKey(owner, taskID)
	n, err := r.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if err := r.Redis.Expire(ctx, key, r.TTL).Err(); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Reset clears the counter after a passing submission.
func (r *AttemptRepository) Reset(ctx context.Context, owner, taskID string) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.Del(ctx, r.counterKey(owner, taskID)).Err()
}
