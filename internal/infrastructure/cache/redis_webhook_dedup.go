package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyNamespace    = "nv"
	webhookPrefix   = "webhook"
	DefaultDedupTTL = 48 * time.Hour
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisWebhookDedup keeps one key per processed webhook event so redeliveries are short-circuited.
type RedisWebhookDedup struct {
	store cmdable
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

var _ interfaces.IWebhookDedup = (*RedisWebhookDedup)(nil)

// NewRedisClient builds the client and checks connectivity.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis address is required")
	}
	raw := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return raw, nil
}

func NewRedisWebhookDedup(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisWebhookDedup {
	return newRedisWebhookDedup(client, ttl, log)
}

func newRedisWebhookDedup(store cmdable, ttl time.Duration, log zerolog.Logger) *RedisWebhookDedup {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &RedisWebhookDedup{store: store, ttl: ttl, log: log, now: time.Now}
}

func (d *RedisWebhookDedup) CheckAndMark(ctx context.Context, source, eventID string) (bool, error) {
	if d.store == nil {
		return false, errors.New("redis client not initialized")
	}
	key := WebhookKey(source, eventID)
	first, err := d.store.SetNX(ctx, key, d.now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("marking webhook %s: %w", key, err)
	}
	if !first {
		d.log.Debug().Str("key", key).Msg("[webhook][dedup] event already processed")
	}
	return first, nil
}

func (d *RedisWebhookDedup) Release(ctx context.Context, source, eventID string) error {
	if d.store == nil {
		return errors.New("redis client not initialized")
	}
	return d.store.Del(ctx, WebhookKey(source, eventID)).Err()
}

// Ping is used by the readiness check.
func (d *RedisWebhookDedup) Ping(ctx context.Context) error {
	if d.store == nil {
		return errors.New("redis client not initialized")
	}
	return d.store.Ping(ctx).Err()
}

// WebhookKey namespaces an event id, e.g. nv:webhook:orionpay:evt_1.
func WebhookKey(source, eventID string) string {
	parts := []string{keyNamespace, webhookPrefix}
	for _, p := range []string{source, eventID} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ":")
}
