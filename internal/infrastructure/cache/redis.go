package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"talent-admin/internal/config"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "talent-admin:"

const defaultTTL = 30 * time.Second

var ErrDisabled = errors.New("cache disabled")

// Redis is a JSON cache for derived data. A nil or disabled Redis is a
// no-op, and Redis errors never fail a caller that can recompute.
type Redis struct {
	client *redis.Client
	logger *log.Logger

	degraded atomic.Bool
}

// NewRedis connects when cfg.Host is set. Without a host the cache is
// disabled and every read misses.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	if logger == nil {
		logger = log.Default()
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		logger.Printf("[Cache] REDIS_HOST not set, dashboard cache disabled")
		return &Redis{logger: logger}
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	r := &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(host, port),
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		}),
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r.observe(r.client.Ping(ctx).Err())
	return r
}

func (r *Redis) enabled() bool {
	return r != nil && r.client != nil
}

// observe logs transitions between healthy and degraded, once each way.
func (r *Redis) observe(err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		if r.degraded.CompareAndSwap(false, true) {
			r.logger.Printf("[Cache] Redis unavailable, falling through to store: %v", err)
		}
		return
	}
	if r.degraded.CompareAndSwap(true, false) {
		r.logger.Printf("[Cache] Redis reachable again")
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.enabled() {
		return ErrDisabled
	}
	err := r.client.Ping(ctx).Err()
	r.observe(err)
	return err
}

// GetJSON decodes key into out. A miss, a disabled cache or an undecodable
// entry all report hit=false.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.enabled() {
		return false, nil
	}
	b, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
	r.observe(err)
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		_ = r.client.Del(ctx, KeyPrefix+key).Err()
		return false, nil
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, KeyPrefix+key, b, ttl).Err()
	r.observe(err)
	return err
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.enabled() {
		return nil
	}
	err := r.client.Del(ctx, KeyPrefix+key).Err()
	r.observe(err)
	return err
}

func (r *Redis) Close() error {
	if !r.enabled() {
		return nil
	}
	return r.client.Close()
}
