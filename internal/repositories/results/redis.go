package results

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-build-optimizer/internal/redis"
)

const (
	// Key pattern: result:{run_id}
	resultKeyPrefix = "result:"

	// DefaultTTL is how long a run is kept when no TTL is given
	DefaultTTL = 24 * time.Hour

	errRecordNil  = "record cannot be nil"
	errRunIDEmpty = "run ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock

	// TTL of 0 uses DefaultTTL
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for optimization runs
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a run with its TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	record, ttl, err := stamp(input, r.clock.Now(), r.ttl)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run %s", record.RunID)
	}

	err = r.client.Set(ctx, buildKey(record.RunID), data, ttl).Err()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store run in Redis")
	}

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a run by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	key := buildKey(input.RunID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("run %s not found", input.RunID).
				WithMeta("run_id", input.RunID)
		}
		return nil, errors.Wrapf(err, "failed to get run from Redis")
	}

	var record Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal run %s", input.RunID)
	}

	// Redis expiry is the primary mechanism; the clock check covers skew
	if r.clock.Now().After(record.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("run %s has expired", input.RunID).
			WithMeta("run_id", input.RunID)
	}

	return &GetOutput{Record: &record}, nil
}

func buildKey(runID string) string {
	return resultKeyPrefix + runID
}

// stamp validates input and returns a copy of its record with timestamps set
func stamp(input CreateInput, now time.Time, defaultTTL time.Duration) (*Record, time.Duration, error) {
	if input.Record == nil {
		return nil, 0, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.RunID == "" {
		return nil, 0, errors.InvalidArgument(errRunIDEmpty)
	}
	if input.TTL < 0 {
		return nil, 0, errors.InvalidArgument("ttl cannot be negative")
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	record := *input.Record
	record.CreatedAt = now
	record.ExpiresAt = now.Add(ttl)
	return &record, ttl, nil
}
