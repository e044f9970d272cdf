package catalog

import (
	"context"
	"encoding/json"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-build-optimizer/internal/redis"
)

const (
	itemsKey   = "catalog:items"
	idsKey     = "catalog:wynnbuilder_ids"
	versionKey = "catalog:version"
)

// RedisConfig contains configuration for the Redis catalog repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a Redis-backed catalog repository. Items live in one
// hash keyed by item ID with a JSON value per item.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(input.Items))
	for _, item := range input.Items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal item %s", item.ID)
		}
		fields[item.ID] = data
	}

	ids := make(map[string]any, len(input.WynnBuilderIDs))
	for name, id := range input.WynnBuilderIDs {
		ids[name] = id
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, itemsKey, idsKey, versionKey)
		if len(fields) > 0 {
			pipe.HSet(ctx, itemsKey, fields)
		}
		if len(ids) > 0 {
			pipe.HSet(ctx, idsKey, ids)
		}
		pipe.Set(ctx, versionKey, input.Version, 0)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store catalog in Redis")
	}

	return &PutOutput{Stored: len(fields)}, nil
}

func (r *redisRepository) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	raw, err := r.client.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog from Redis")
	}

	version, err := r.client.Get(ctx, versionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no catalog has been imported")
		}
		return nil, errors.Wrap(err, "failed to read catalog version from Redis")
	}

	out := &ListOutput{Version: version}
	for id, value := range raw {
		item, err := decodeItem(value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal item %s", id).
				WithMeta("item", id)
		}
		out.Items = append(out.Items, item)
	}
	sortByID(out.Items)

	rawIDs, err := r.client.HGetAll(ctx, idsKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read id table from Redis")
	}
	out.WynnBuilderIDs = make(map[string]int, len(rawIDs))
	for name, value := range rawIDs {
		id, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "stored id for %q is not a number", name)
		}
		out.WynnBuilderIDs[name] = id
	}

	return out, nil
}
