package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/dashboard-facturas/pkg/config"
)

const (
	keyPrefix     = "view:"
	scanBatchSize = 100
)

// RedisViewCache caché compartida entre instancias sobre Redis. Claves bajo "view:".
type RedisViewCache struct {
	client     *redis.Client
	ownsClient bool
}

var _ ViewCache = (*RedisViewCache)(nil)

// NewRedisViewCache conecta con Redis y verifica la conexión con PING.
func NewRedisViewCache(ctx context.Context, cfg config.RedisConfig) (*RedisViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	c := NewRedisViewCacheWithClient(client)
	c.ownsClient = true
	return c, nil
}

// NewRedisViewCacheWithClient usa un cliente existente; el llamador lo cierra.
func NewRedisViewCacheWithClient(client *redis.Client) *RedisViewCache {
	return &RedisViewCache{client: client}
}

func (c *RedisViewCache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Entrada corrupta: se descarta y se trata como fallo de caché.
		_ = c.client.Del(ctx, keyPrefix+key)
		return nil, nil
	}
	return &e, nil
}

func (c *RedisViewCache) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// Revalidate recorre con SCAN las claves bajo path y las borra por lotes.
func (c *RedisViewCache) Revalidate(ctx context.Context, path string) error {
	pattern := keyPrefix + escapeGlob(normalizePath(path)) + "*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis: scan %s: %w", path, err)
		}
		var doomed []string
		for _, k := range keys {
			if underPath(strings.TrimPrefix(k, keyPrefix), path) {
				doomed = append(doomed, k)
			}
		}
		if len(doomed) > 0 {
			if err := c.client.Del(ctx, doomed...).Err(); err != nil {
				return fmt.Errorf("redis: del %s: %w", path, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close cierra el cliente si lo creó esta caché.
func (c *RedisViewCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }
