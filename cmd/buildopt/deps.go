package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/clients/itemdb"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/config"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/metrics"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/redis"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/results"
)

const redisPingTimeout = 5 * time.Second

// connectRedis opens and pings the configured Redis instance
func connectRedis(ctx context.Context, cfg config.RedisConfig) (redis.Client, error) {
	client, err := redis.NewClient(cfg.Address, &redis.Options{
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// importFile parses the item database, and the id table when idsPath is
// set, and stores both in repo
func importFile(ctx context.Context, repo catalog.Repository, itemsPath, idsPath string) (*itemdb.Catalog, error) {
	if itemsPath == "" {
		return nil, errors.InvalidArgument("an item database path is required")
	}

	cat, err := itemdb.LoadFile(itemsPath)
	if err != nil {
		return nil, err
	}

	var ids map[string]int
	if idsPath != "" {
		ids, err = itemdb.LoadIDFile(idsPath)
		if err != nil {
			return nil, err
		}
	}

	out, err := repo.Put(ctx, &catalog.PutInput{
		Items:          cat.Items,
		WynnBuilderIDs: ids,
		Version:        cat.Version,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store catalog")
	}

	slog.InfoContext(ctx, "catalog imported",
		"path", itemsPath,
		"items", out.Stored,
		"skipped", cat.Skipped,
		"wynnbuilder_ids", len(ids),
		"version", cat.Version)
	return cat, nil
}

// services holds the wired optimizer and its storage
type services struct {
	optimizer optimizer.Service
	catalog   catalog.Repository
	closeFn   func()
}

func (s *services) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// newServices wires storage and the optimizer. With a Redis address the
// catalog must already be imported; without one the item database named
// in the config is loaded into memory.
func newServices(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*services, error) {
	logger := slog.Default()
	svc := &services{}

	var resultRepo results.Repository
	if cfg.Redis.Address != "" {
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		svc.closeFn = func() { _ = client.Close() }

		svc.catalog, err = catalog.NewRedis(&catalog.RedisConfig{Client: client})
		if err != nil {
			svc.Close()
			return nil, err
		}
		resultRepo, err = results.NewRedisRepository(&results.Config{
			Client: client,
			Clock:  clock.New(),
			TTL:    cfg.Redis.ResultTTL,
		})
		if err != nil {
			svc.Close()
			return nil, err
		}
		logger.InfoContext(ctx, "using redis storage", "address", cfg.Redis.Address)
	} else {
		svc.catalog = catalog.NewInMemory()
		if _, err := importFile(ctx, svc.catalog, cfg.Catalog.ItemsPath, cfg.Catalog.IDsPath); err != nil {
			return nil, err
		}
		resultRepo = results.NewInMemory(clock.New(), cfg.Redis.ResultTTL)
	}

	var err error
	svc.optimizer, err = optimizer.NewOrchestrator(&optimizer.Config{
		CatalogRepo: svc.catalog,
		ResultRepo:  resultRepo,
		IDGenerator: idgen.NewUUID("run"),
		ResultTTL:   cfg.Redis.ResultTTL,
		Metrics:     recorder,
		Logger:      logger,
	})
	if err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}
