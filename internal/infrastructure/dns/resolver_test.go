package dns

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/domain/domaincheck"
)

func newFakeResolver(lookup func(ctx context.Context, host string) ([]string, error)) *Resolver {
	return &Resolver{
		lookupHost:  lookup,
		timeout:     time.Second,
		concurrency: 4,
		log:         zerolog.Nop(),
	}
}

func nxdomain(host string) error {
	return &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func TestResolver_Check_StatusMapping(t *testing.T) {
	resolver := newFakeResolver(func(_ context.Context, host string) ([]string, error) {
		switch host {
		case "taken.com":
			return []string{"93.184.216.34"}, nil
		case "free.com":
			return nil, nxdomain(host)
		default:
			return nil, errors.New("server misbehaving")
		}
	})

	results := resolver.Check(context.Background(), []string{"taken", "free", "flaky"}, []string{".com"})
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	expected := map[string]domaincheck.Status{
		"taken.com": domaincheck.StatusTaken,
		"free.com":  domaincheck.StatusAvailable,
		"flaky.com": domaincheck.StatusUnknown,
	}
	for _, r := range results {
		if expected[r.Domain] != r.Status {
			t.Errorf("%s status = %q, want %q", r.Domain, r.Status, expected[r.Domain])
		}
	}
}

func TestResolver_Check_DeterministicOrder(t *testing.T) {
	resolver := newFakeResolver(func(_ context.Context, host string) ([]string, error) {
		return nil, nxdomain(host)
	})

	results := resolver.Check(context.Background(), []string{"b", "a"}, []string{".io", ".com"})
	want := []string{"b.io", "b.com", "a.io", "a.com"}
	if len(results) != len(want) {
		t.Fatalf("results = %d, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.Domain != want[i] {
			t.Errorf("results[%d] = %s, want %s (names outer, TLDs inner)", i, r.Domain, want[i])
		}
	}
}

func TestResolver_Check_NormalizesAndDedupes(t *testing.T) {
	var calls int32
	resolver := newFakeResolver(func(_ context.Context, host string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nxdomain(host)
	})

	results := resolver.Check(context.Background(), []string{"Nova", "nova"}, []string{"io", ".io"})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1 after dedupe", len(results))
	}
	if results[0].Domain != "nova.io" {
		t.Errorf("domain = %q, want nova.io", results[0].Domain)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("lookups = %d, want 1", calls)
	}
}

func TestResolver_Check_EmptyInputs(t *testing.T) {
	resolver := newFakeResolver(func(_ context.Context, host string) ([]string, error) {
		t.Fatal("lookup must not run for empty inputs")
		return nil, nil
	})

	if got := resolver.Check(context.Background(), nil, []string{".com"}); got != nil {
		t.Errorf("Check(nil names) = %v, want nil", got)
	}
	if got := resolver.Check(context.Background(), []string{"nova"}, nil); got != nil {
		t.Errorf("Check(nil tlds) = %v, want nil", got)
	}
}

func TestResolver_Check_ErrorsNeverPropagate(t *testing.T) {
	resolver := newFakeResolver(func(_ context.Context, _ string) ([]string, error) {
		return nil, errors.New("i/o timeout")
	})

	results := resolver.Check(context.Background(), []string{"nova"}, []string{".com"})
	if len(results) != 1 || results[0].Status != domaincheck.StatusUnknown {
		t.Errorf("results = %+v, want a single unknown result", results)
	}
}
