package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/domain/domaincheck"
)

const keyPrefix = "namestorm:domain:"

// Checker is a Redis read-through decorator around a domaincheck.Checker.
// Definitive statuses (available, taken) are cached with a TTL; unknown
// results are not cached so transient lookup failures heal on the next
// check. Cache failures are ignored and the inner checker is consulted.
type Checker struct {
	next   domaincheck.Checker
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// New wraps the inner checker with the Redis cache.
func New(client *redis.Client, next domaincheck.Checker, ttl time.Duration, log zerolog.Logger) *Checker {
	return &Checker{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "domain-cache").Logger(),
	}
}

var _ domaincheck.Checker = (*Checker)(nil)

// Check serves the whole batch from cache when every pair is present,
// otherwise delegates to the inner checker and stores the definitive
// results.
func (c *Checker) Check(ctx context.Context, names []string, tlds []string) []domaincheck.Result {
	names = domaincheck.NormalizeNames(names)
	tlds = domaincheck.NormalizeTLDs(tlds)
	if len(names) == 0 || len(tlds) == 0 {
		return nil
	}

	if cached, ok := c.loadAll(ctx, names, tlds); ok {
		return cached
	}

	results := c.next.Check(ctx, names, tlds)
	c.storeAll(ctx, results)
	return results
}

func (c *Checker) loadAll(ctx context.Context, names, tlds []string) ([]domaincheck.Result, bool) {
	keys := make([]string, 0, len(names)*len(tlds))
	for _, name := range names {
		for _, tld := range tlds {
			keys = append(keys, keyPrefix+domaincheck.FullDomain(name, tld))
		}
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Debug().Err(err).Msg("cache read failed")
		return nil, false
	}

	results := make([]domaincheck.Result, 0, len(keys))
	idx := 0
	for _, name := range names {
		for _, tld := range tlds {
			raw, ok := values[idx].(string)
			idx++
			if !ok || raw == "" {
				return nil, false
			}
			results = append(results, domaincheck.Result{
				Name:   name,
				TLD:    tld,
				Domain: domaincheck.FullDomain(name, tld),
				Status: domaincheck.Status(raw),
			})
		}
	}
	return results, true
}

func (c *Checker) storeAll(ctx context.Context, results []domaincheck.Result) {
	if len(results) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for _, r := range results {
		if r.Status == domaincheck.StatusUnknown {
			continue
		}
		pipe.Set(ctx, keyPrefix+r.Domain, string(r.Status), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Debug().Err(err).Msg("cache write failed")
	}
}
