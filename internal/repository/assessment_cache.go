package repository

import (
	"context"
	"encoding/json"
	"job_board_backend/internal/model"
	"job_board_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	aggregateCachePrefix   = "assessment:aggregate:"
	aggregateVersionPrefix = "assessment:version:"
)

// AssessmentCache keeps fully loaded aggregates in Redis. A nil cache or a
// nil client turns every call into a no-op, so callers never branch on it.
//
// Every invalidation bumps a per-assessment version. A reader takes the
// version before loading from the database and Set only stores the aggregate
// if the version is still the same, so a load that raced a write is dropped.
type AssessmentCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewAssessmentCache(rdb *redis.Client, ttl time.Duration) *AssessmentCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AssessmentCache{Redis: rdb, TTL: ttl}
}

func (c *AssessmentCache) enabled() bool {
	return c != nil && c.Redis != nil
}

func (c *AssessmentCache) Get(ctx context.Context, id string) (*model.Assessment, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.Redis.Get(ctx, aggregateCachePrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("assessment cache read failed", zap.String("assessmentId", id), zap.Error(err))
		}
		return nil, false
	}
	var a model.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &a, true
}

// Version returns the current write generation of id. A negative value
// means the version is unknown and the next Set will be skipped.
func (c *AssessmentCache) Version(ctx context.Context, id string) int64 {
	if !c.enabled() {
		return -1
	}
	v, err := c.Redis.Get(ctx, aggregateVersionPrefix+id).Int64()
	switch {
	case err == redis.Nil:
		return 0
	case err != nil:
		logger.Log.Warn("assessment cache version read failed", zap.String("assessmentId", id), zap.Error(err))
		return -1
	}
	return v
}

// Set stores a if no invalidation happened since version was read.
func (c *AssessmentCache) Set(ctx context.Context, a *model.Assessment, version int64) {
	if !c.enabled() || a == nil || version < 0 {
		return
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}

	versionKey := aggregateVersionPrefix + a.ID
	err = c.Redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, aggregateCachePrefix+a.ID, raw, c.TTL)
			return nil
		})
		return err
	}, versionKey)
	if err != nil && err != redis.TxFailedErr {
		logger.Log.Warn("assessment cache write failed", zap.String("assessmentId", a.ID), zap.Error(err))
	}
}

func (c *AssessmentCache) Invalidate(ctx context.Context, id string) {
	if !c.enabled() {
		return
	}
	_, err := c.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, aggregateCachePrefix+id)
		pipe.Incr(ctx, aggregateVersionPrefix+id)
		return nil
	})
	if err != nil {
		logger.Log.Warn("assessment cache invalidate failed", zap.String("assessmentId", id), zap.Error(err))
	}
}
