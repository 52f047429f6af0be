package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/artauction/auctionapi/config"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiterStore builds the per-client quota store named by
// ratelimit.store.
func NewRateLimiterStore(cfg config.RateLimitConfig) (middleware.RateLimiterStore, error) {
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisRateLimiterStore(&redisCounter{client: client}, cfg.Requests, time.Duration(cfg.Window)*time.Second), nil
	case "memory", "":
		return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.Rate),
			Burst:     cfg.Burst,
			ExpiresIn: time.Duration(cfg.ExpiresIn) * time.Second,
		}), nil
	default:
		return nil, errors.Errorf("unsupported rate limit store %q", cfg.Store)
	}
}

func rateLimiter(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded").SetInternal(err)
		},
	})
}

// windowCounter increments the hit counter of key, creating it with the
// given time to live.
type windowCounter interface {
	Hit(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

func (r *redisCounter) Hit(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RedisRateLimiterStore is a fixed window quota shared by every instance
// pointing at the same redis.
type RedisRateLimiterStore struct {
	counter windowCounter
	limit   int64
	window  time.Duration
	prefix  string
	now     func() time.Time
}

func NewRedisRateLimiterStore(counter windowCounter, limit int, window time.Duration) *RedisRateLimiterStore {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiterStore{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		prefix:  "auction:ratelimit:",
		now:     time.Now,
	}
}

// Allow fails open when redis is unreachable.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	slot := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("%s%s:%d", s.prefix, identifier, slot)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	n, err := s.counter.Hit(ctx, key, s.window)
	if err != nil {
		zap.L().Warn("rate limit store unavailable", zap.String("key", key), zap.Error(err))
		return true, nil
	}
	return n <= s.limit, nil
}
