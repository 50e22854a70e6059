package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"summary-service/internal/domain/entity"
	"summary-service/internal/usecase/summary"
)

// lookupIPAddr is swapped in tests.
var lookupIPAddr = net.DefaultResolver.LookupIPAddr

// validateURL is run on the initial URL and on every redirect target.
func validateURL(ctx context.Context, rawURL string, denyPrivateIPs bool) error {
	if err := entity.ValidateURL(rawURL); err != nil {
		return fmt.Errorf("%w: %v", summary.ErrInvalidURL, err)
	}
	if !denyPrivateIPs {
		return nil
	}
	u, _ := url.Parse(rawURL) // parsed above
	return checkPublicHost(ctx, u.Hostname())
}

// checkPublicHost fails with ErrPrivateIP unless every address of host is
// public. Literal IPs skip DNS.
func checkPublicHost(ctx context.Context, host string) error {
	if ip := net.ParseIP(host); ip != nil {
		if entity.IsPrivateIP(ip) {
			return fmt.Errorf("%w: %s", summary.ErrPrivateIP, ip)
		}
		return nil
	}

	addrs, err := lookupIPAddr(ctx, host)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", summary.ErrInvalidURL, host, err)
	}
	if len(addrs) == 0 {
		return fmt.Errorf("%w: %s has no addresses", summary.ErrInvalidURL, host)
	}
	for _, a := range addrs {
		if entity.IsPrivateIP(a.IP) {
			return fmt.Errorf("%w: %s resolves to %s", summary.ErrPrivateIP, host, a.IP)
		}
	}
	return nil
}
