package geocode

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Store when the key is absent.
var ErrCacheMiss = errors.New("geocode cache miss")

// Store is the key/value surface Cached needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// RedisStore adapts a go-redis client to Store.
type RedisStore struct {
	Client *redis.Client
}

func (s RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	bs, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return bs, err
}

func (s RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.Client.SetEx(ctx, key, val, ttl).Err()
}

// Cached serves repeated lookups of the same address from a Store.  Only
// non-empty results are stored so a provider outage or an unknown address is
// never remembered.  Cache errors are logged and fall through to Next.
type Cached struct {
	Next   Geocoder
	Store  Store
	TTL    time.Duration
	Prefix string
}

// NewCached wraps next with a Redis cache.  A nil client returns next as is.
func NewCached(next Geocoder, rdb *redis.Client, ttl time.Duration, prefix string) Geocoder {
	if rdb == nil {
		return next
	}
	return &Cached{Next: next, Store: RedisStore{Client: rdb}, TTL: ttl, Prefix: prefix}
}

// Geocode implements Geocoder.
func (c *Cached) Geocode(ctx context.Context, address string) ([]Match, error) {
	key := c.key(address)
	if bs, err := c.Store.Get(ctx, key); err == nil {
		var matches []Match
		if err := json.Unmarshal(bs, &matches); err == nil && len(matches) > 0 {
			return matches, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Warnf("geocode cache get %s: %v", key, err)
	}

	matches, err := c.Next.Geocode(ctx, address)
	if err != nil || len(matches) == 0 {
		return matches, err
	}
	if bs, err := json.Marshal(matches); err == nil {
		if err := c.Store.Set(ctx, key, bs, c.ttl()); err != nil {
			log.Warnf("geocode cache set %s: %v", key, err)
		}
	}
	return matches, nil
}

func (c *Cached) ttl() time.Duration {
	if c.TTL <= 0 {
		return 24 * time.Hour
	}
	return c.TTL
}

// key normalises case and whitespace so trivially different spellings of an
// address share an entry.
func (c *Cached) key(address string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	sum := sha1.Sum([]byte(norm))
	prefix := c.Prefix
	if prefix == "" {
		prefix = "geo"
	}
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}
