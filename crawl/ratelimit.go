package crawl

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/localmind"
	"golang.org/x/time/rate"
)

var _ localmind.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets, so
// imports from different hosts proceed independently while repeated imports
// from one host are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return NewDomainLimiterWithBurst(rps, 1)
}

// NewDomainLimiterWithBurst is like NewDomainLimiter but allows up to burst
// back-to-back requests per domain.
func NewDomainLimiterWithBurst(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until the rate limit allows a request to the domain. Domains
// are compared case-insensitively, ignoring any port and a leading "www.".
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(DomainKey(domain)).Wait(ctx)
}

// DomainKey returns the key requests to domain are limited under.
func DomainKey(domain string) string {
	if host, _, err := net.SplitHostPort(domain); err == nil {
		domain = host
	}
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	return strings.TrimPrefix(domain, "www.")
}

// Domains returns the number of domains seen so far.
func (d *DomainLimiter) Domains() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.limiters)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = l
	}
	return l
}
