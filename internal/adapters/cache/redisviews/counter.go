// Package redisviews implementa el contador de vistas sobre Redis. Es un
// cache opcional: si Redis no está o falla, el service cae al contador del
// repositorio sin cortar el request.
package redisviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "eventhorizon:views:"

type Counter struct {
	rdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

// New conecta y hace un ping corto; error si Redis no responde, para que el
// wiring decida seguir sin counter.
func New(cfg Config) (*Counter, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redisviews: addr required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &Counter{rdb: rdb}, nil
}

// Add implementa events.ViewCounter: INCR atómico, devuelve el total nuevo.
func (c *Counter) Add(ctx context.Context, eventID string) (int64, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return 0, errors.New("redisviews: event id required")
	}
	return c.rdb.Incr(ctx, keyPrefix+eventID).Result()
}

func (c *Counter) Close() error {
	return c.rdb.Close()
}
