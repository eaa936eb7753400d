package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver used for the domain check.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomainChecker returns a check that accepts an address whose domain has
// an MX record or, failing that, resolves to an IP.
func EmailDomainChecker(r Resolver) func(email string) bool {
	return func(email string) bool {
		at := strings.LastIndex(email, "@")
		if at < 0 || at == len(email)-1 {
			return false
		}
		domain := email[at+1:]

		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
			return true
		}
		if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
			return true
		}
		return false
	}
}

// IsEmailDomainValid checks against the system resolver.
var IsEmailDomainValid = EmailDomainChecker(net.DefaultResolver)
