package dns

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/infrastructure/metrics"
)

// Resolver implements domaincheck.Checker on top of DNS lookups. A domain
// resolving to records is considered taken; NXDOMAIN is used as a heuristic
// proxy for "likely available"; any other failure yields unknown.
type Resolver struct {
	lookupHost  func(ctx context.Context, host string) ([]string, error)
	timeout     time.Duration
	concurrency int
	log         zerolog.Logger
}

// Config tunes the resolver.
type Config struct {
	Timeout     time.Duration
	Concurrency int
}

// New builds a Resolver backed by the system resolver.
func New(cfg Config, log zerolog.Logger) *Resolver {
	r := &net.Resolver{}
	return &Resolver{
		lookupHost:  r.LookupHost,
		timeout:     cfg.Timeout,
		concurrency: cfg.Concurrency,
		log:         log.With().Str("component", "dns-resolver").Logger(),
	}
}

var _ domaincheck.Checker = (*Resolver)(nil)

// Check resolves every (name, TLD) pair concurrently. Results are merged
// into a deterministic order regardless of lookup completion order: names
// outer loop, TLDs inner loop. Lookup errors never propagate; the affected
// pair is reported as unknown.
func (r *Resolver) Check(ctx context.Context, names []string, tlds []string) []domaincheck.Result {
	names = domaincheck.NormalizeNames(names)
	tlds = domaincheck.NormalizeTLDs(tlds)
	if len(names) == 0 || len(tlds) == 0 {
		return nil
	}

	results := make([]domaincheck.Result, len(names)*len(tlds))

	limit := r.concurrency
	if limit <= 0 {
		limit = 16
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, name := range names {
		for j, tld := range tlds {
			idx := i*len(tlds) + j
			name, tld := name, tld
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				results[idx] = r.lookup(ctx, name, tld)
			}()
		}
	}
	wg.Wait()

	return results
}

func (r *Resolver) lookup(ctx context.Context, name, tld string) domaincheck.Result {
	domain := domaincheck.FullDomain(name, tld)
	res := domaincheck.Result{
		Name:   name,
		TLD:    tld,
		Domain: domain,
		Status: domaincheck.StatusUnknown,
	}

	lctx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		lctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	addrs, err := r.lookupHost(lctx, domain)
	switch {
	case err == nil && len(addrs) > 0:
		res.Status = domaincheck.StatusTaken
	case err == nil:
		// Resolved with no addresses; treat as taken, records exist.
		res.Status = domaincheck.StatusTaken
	default:
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			res.Status = domaincheck.StatusAvailable
		} else {
			r.log.Debug().Err(err).Str("domain", domain).Msg("lookup failed")
		}
	}

	metrics.RecordLookup(string(res.Status), time.Since(start).Seconds())
	return res
}
