package main

import (
	"context"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zoobzio/railz/examples/orders"
)

// openStore connects the configured repository. The returned close func
// releases any connection it holds.
func openStore(ctx context.Context, cfg StoreConfig) (orders.Repository, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return orders.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrapf(err, "connect redis at %s", cfg.Redis.Addr)
		}
		return orders.NewRedisStore(client, cfg.Redis.Prefix), client.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown store driver %q", cfg.Driver)
	}
}
