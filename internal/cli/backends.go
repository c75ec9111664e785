package cli

import (
	"context"
	"fmt"

	"github.com/mwittig/packsize/pkg/cache"
	"github.com/mwittig/packsize/pkg/config"
	"github.com/mwittig/packsize/pkg/store"
)

// openCache constructs the metadata cache selected by the configuration.
// The returned cache is owned by the caller and must be closed.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, "packsize")
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return c, nil
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (expected memory, redis, or none)", cfg.Cache.Backend)
	}
}

// openStore constructs the report archive selected by the configuration.
// A "none" backend returns a nil store, meaning reports are not archived.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		s, err := store.NewMongoStore(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.Database, cfg.Store.Mongo.Collection)
		if err != nil {
			return nil, fmt.Errorf("connect mongo store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (expected none, memory, or mongo)", cfg.Store.Backend)
	}
}
