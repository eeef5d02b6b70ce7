package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jrjohn/academy-cloud-go/internal/resilience"
)

const (
	keyReady     = "academy:outbox:ready"
	keyScheduled = "academy:outbox:scheduled"
	keyDead      = "academy:outbox:dead"
	keyPrefixFx  = "academy:outbox:effect:"
	keyStats     = "academy:outbox:stats"

	effectTTL = 7 * 24 * time.Hour
)

// RedisQueue implements Queue on redis: a ready list, a scheduled sorted
// set for retries, and a dead list.
type RedisQueue struct {
	client  *redis.Client
	backoff resilience.Backoff
}

// NewRedisQueue creates a redis-backed effect queue.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client, backoff: resilience.DefaultBackoff()}
}

func (q *RedisQueue) Enqueue(ctx context.Context, effect *Effect) error {
	if err := q.putEffect(ctx, effect); err != nil {
		return err
	}
	if err := q.client.LPush(ctx, keyReady, effect.ID).Err(); err != nil {
		return fmt.Errorf("failed to enqueue effect: %w", err)
	}
	q.client.HIncrBy(ctx, keyStats, "enqueued_total", 1)
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*Effect, error) {
	effectID, err := q.client.RPop(ctx, keyReady).Result()
	if err == redis.Nil {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue effect: %w", err)
	}

	effect, err := q.getEffect(ctx, effectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	effect.Status = StatusRunning
	effect.StartedAt = &now
	effect.Attempts++
	if err := q.putEffect(ctx, effect); err != nil {
		return nil, err
	}
	return effect, nil
}

func (q *RedisQueue) Complete(ctx context.Context, effectID string) error {
	effect, err := q.getEffect(ctx, effectID)
	if err != nil {
		return err
	}

	now := time.Now()
	effect.Status = StatusDone
	effect.CompletedAt = &now
	if err := q.putEffect(ctx, effect); err != nil {
		return err
	}
	q.client.HIncrBy(ctx, keyStats, "completed_total", 1)
	return nil
}

func (q *RedisQueue) Fail(ctx context.Context, effectID string, effectErr error) error {
	effect, err := q.getEffect(ctx, effectID)
	if err != nil {
		return err
	}

	effect.LastError = effectErr.Error()

	if effect.Attempts <= effect.MaxRetries {
		delay := q.backoff.Delay(effect.Attempts)
		scheduledAt := time.Now().Add(delay)
		effect.Status = StatusRetrying
		effect.ScheduledAt = &scheduledAt

		if err := q.putEffect(ctx, effect); err != nil {
			return err
		}
		if err := q.client.ZAdd(ctx, keyScheduled, redis.Z{
			Score:  float64(scheduledAt.Unix()),
			Member: effect.ID,
		}).Err(); err != nil {
			return fmt.Errorf("failed to schedule retry: %w", err)
		}
		q.client.HIncrBy(ctx, keyStats, "retries_total", 1)
		return nil
	}

	effect.Status = StatusDead
	if err := q.putEffect(ctx, effect); err != nil {
		return err
	}
	if err := q.client.LPush(ctx, keyDead, effect.ID).Err(); err != nil {
		return fmt.Errorf("failed to move effect to dead list: %w", err)
	}
	q.client.HIncrBy(ctx, keyStats, "dead_total", 1)
	return nil
}

func (q *RedisQueue) ProcessScheduled(ctx context.Context) (int, error) {
	now := time.Now().Unix()
	effectIDs, err := q.client.ZRangeByScore(ctx, keyScheduled, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read scheduled effects: %w", err)
	}

	moved := 0
	for _, effectID := range effectIDs {
		effect, err := q.getEffect(ctx, effectID)
		if err != nil {
			q.client.ZRem(ctx, keyScheduled, effectID)
			continue
		}
		if err := q.client.ZRem(ctx, keyScheduled, effectID).Err(); err != nil {
			continue
		}

		effect.Status = StatusPending
		effect.ScheduledAt = nil
		if err := q.putEffect(ctx, effect); err != nil {
			continue
		}
		if err := q.client.LPush(ctx, keyReady, effect.ID).Err(); err != nil {
			continue
		}
		moved++
	}
	return moved, nil
}

func (q *RedisQueue) RequeueStale(ctx context.Context, threshold time.Duration) (int, error) {
	// Running effects have no list membership, so walk the effect records.
	var (
		cursor  uint64
		requeue []string
	)
	for {
		keys, next, err := q.client.Scan(ctx, cursor, keyPrefixFx+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan effects: %w", err)
		}
		for _, key := range keys {
			effect, err := q.getEffect(ctx, key[len(keyPrefixFx):])
			if err != nil {
				continue
			}
			if effect.Status != StatusRunning || effect.StartedAt == nil {
				continue
			}
			if time.Since(*effect.StartedAt) > threshold {
				requeue = append(requeue, effect.ID)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	moved := 0
	for _, effectID := range requeue {
		effect, err := q.getEffect(ctx, effectID)
		if err != nil {
			continue
		}
		effect.Status = StatusPending
		effect.StartedAt = nil
		if err := q.putEffect(ctx, effect); err != nil {
			continue
		}
		if err := q.client.LPush(ctx, keyReady, effect.ID).Err(); err != nil {
			continue
		}
		moved++
	}
	return moved, nil
}

func (q *RedisQueue) Stats(ctx context.Context) (map[string]int64, error) {
	stats, err := q.client.HGetAll(ctx, keyStats).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	result := make(map[string]int64, len(stats)+3)
	for k, v := range stats {
		var val int64
		fmt.Sscanf(v, "%d", &val)
		result[k] = val
	}

	ready, _ := q.client.LLen(ctx, keyReady).Result()
	result["ready"] = ready
	scheduled, _ := q.client.ZCard(ctx, keyScheduled).Result()
	result["scheduled"] = scheduled
	dead, _ := q.client.LLen(ctx, keyDead).Result()
	result["dead"] = dead

	return result, nil
}

func (q *RedisQueue) getEffect(ctx context.Context, effectID string) (*Effect, error) {
	data, err := q.client.Get(ctx, keyPrefixFx+effectID).Bytes()
	if err == redis.Nil {
		return nil, ErrEffectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get effect: %w", err)
	}

	var effect Effect
	if err := json.Unmarshal(data, &effect); err != nil {
		return nil, fmt.Errorf("failed to deserialize effect: %w", err)
	}
	return &effect, nil
}

func (q *RedisQueue) putEffect(ctx context.Context, effect *Effect) error {
	data, err := json.Marshal(effect)
	if err != nil {
		return fmt.Errorf("failed to serialize effect: %w", err)
	}
	if err := q.client.Set(ctx, keyPrefixFx+effect.ID, data, effectTTL).Err(); err != nil {
		return fmt.Errorf("failed to store effect: %w", err)
	}
	return nil
}
