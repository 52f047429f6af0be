package webserver

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// clientIPExtractor decides what c.RealIP returns, and with it the rate
// limit key and the audited address. Without trusted proxies the peer
// address is used and forwarding headers are ignored. With them, the
// X-Forwarded-For chain is walked from the right up to the first hop that
// is not a listed proxy.
func clientIPExtractor(trusted []string) (echo.IPExtractor, error) {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, entry := range trusted {
		ipNet, err := parseProxy(entry)
		if err != nil {
			return nil, err
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}

// parseProxy accepts a CIDR or a single address.
func parseProxy(entry string) (*net.IPNet, error) {
	entry = strings.TrimSpace(entry)
	if _, ipNet, err := net.ParseCIDR(entry); err == nil {
		return ipNet, nil
	}
	ip := net.ParseIP(entry)
	if ip == nil {
		return nil, errors.Errorf("invalid trusted proxy %q", entry)
	}
	bits := net.IPv6len * 8
	if v4 := ip.To4(); v4 != nil {
		ip, bits = v4, net.IPv4len*8
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
