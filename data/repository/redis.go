package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/types"
	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds optimistic transaction retries on concurrent writes to one key.
const maxTxRetries = 5

// Tasks live in a hash of id to JSON record; a list keeps creation order.
type redisRepository struct {
	rc       redis.UniversalClient
	hashKey  string
	orderKey string
	options
}

// NewRedis creates a repository on a redis client. Keys are namespaced by prefix.
func NewRedis(rc redis.UniversalClient, prefix string, opts ...Option) TaskRepository {
	hashKey, orderKey := redisKeys(prefix)
	return &redisRepository{
		rc:       rc,
		hashKey:  hashKey,
		orderKey: orderKey,
		options:  newOptions(opts),
	}
}

func redisKeys(prefix string) (hashKey, orderKey string) {
	if prefix == "" {
		prefix = "tasklist"
	}
	return prefix + ":tasks", prefix + ":tasks:order"
}

func encodeTask(t types.Task) (string, error) {
	b, err := json.Marshal(t.ToRecord())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTask(s string) (types.Task, error) {
	var rec types.TaskRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return types.Task{}, err
	}
	return rec.ToTask()
}

func (r *redisRepository) List(ctx context.Context) ([]types.Task, error) {
	ids, err := r.rc.LRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		r.logger.Error(ctx, "failed to list task ids", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks := make([]types.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	values, err := r.rc.HMGet(ctx, r.hashKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// removed between LRANGE and HMGET
			continue
		}
		t, err := decodeTask(s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (types.Task, error) {
	return r.get(ctx, r.rc, id)
}

type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

func (r *redisRepository) get(ctx context.Context, c hashGetter, id string) (types.Task, error) {
	s, err := c.HGet(ctx, r.hashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return types.Task{}, ecode.ErrNotFound
	}
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	t, err := decodeTask(s)
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to decode task: %w", err)
	}
	return t, nil
}

func (r *redisRepository) Create(ctx context.Context, title string, color types.Color) (types.Task, error) {
	t := r.newTask(title, color)
	s, err := encodeTask(t)
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to encode task: %w", err)
	}
	_, err = r.rc.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.hashKey, t.ID, s)
		pipe.RPush(ctx, r.orderKey, t.ID)
		return nil
	})
	if err != nil {
		r.logger.Error(ctx, "failed to create task", "error", err)
		return types.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (r *redisRepository) Update(ctx context.Context, id, title string, color types.Color) (types.Task, error) {
	return r.modify(ctx, id, func(t types.Task) types.Task { return r.edit(t, title, color) })
}

func (r *redisRepository) Toggle(ctx context.Context, id string) (types.Task, error) {
	return r.modify(ctx, id, r.toggle)
}

// modify is a WATCH/MULTI read-modify-write on the task hash.
func (r *redisRepository) modify(ctx context.Context, id string, fn func(types.Task) types.Task) (types.Task, error) {
	var result types.Task
	txf := func(tx *redis.Tx) error {
		t, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}
		t = fn(t)
		s, err := encodeTask(t)
		if err != nil {
			return fmt.Errorf("failed to encode task: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.hashKey, id, s)
			return nil
		})
		if err == nil {
			result = t
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.rc.Watch(ctx, txf, r.hashKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, ecode.ErrNotFound) {
			r.logger.Error(ctx, "failed to update task", "id", id, "error", err)
		}
		return result, err
	}
	return types.Task{}, fmt.Errorf("failed to update task %s: too much contention", id)
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	var deleted *redis.IntCmd
	_, err := r.rc.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.HDel(ctx, r.hashKey, id)
		pipe.LRem(ctx, r.orderKey, 0, id)
		return nil
	})
	if err != nil {
		r.logger.Error(ctx, "failed to delete task", "id", id, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if deleted.Val() == 0 {
		return ecode.ErrNotFound
	}
	return nil
}
