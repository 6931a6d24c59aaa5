package middlewarex

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"worklog/internal/http/respond"
	"worklog/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Counter increments a windowed counter and returns its new value.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements Counter with INCR and a TTL set on first hit.
type RedisCounter struct {
	rdb redis.Cmdable
}

func NewRedisCounter(rdb redis.Cmdable) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimit allows limit requests per tenant per minute. It must run after
// JWTAuth. Counter failures let the request through.
func RateLimit(c Counter, limit int) func(http.Handler) http.Handler {
	return rateLimit(c, limit, time.Now)
}

func rateLimit(c Counter, limit int, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, ok := TenantID(r.Context())
			if !ok || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			t := now()
			window := t.Truncate(time.Minute)
			key := fmt.Sprintf("ratelimit:%d:%d", tenantID, window.Unix())
			n, err := c.Incr(r.Context(), key, time.Minute)
			if err != nil {
				log.Warn().Err(err).Int64("tenant_id", tenantID).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - n
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(limit) {
				reset := window.Add(time.Minute).Sub(t)
				w.Header().Set("Retry-After", strconv.Itoa(int(reset.Seconds())+1))
				metrics.RecordRateLimited()
				respond.Fail(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
