package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// StripPort returns the lower-cased host of "host:port", "[v6]:port",
// "[v6]" or "host". It is used both for Host headers and RemoteAddr.
func StripPort(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		s = h
	} else if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	return strings.ToLower(strings.TrimSuffix(s, "."))
}

// ClientIP returns the address a request comes from.
//
// wifijump usually sits directly on the LAN, so RemoteAddr is the answer.
// With trustProxy (a local reverse proxy in front of it) the left-most
// X-Forwarded-For entry wins, then X-Real-IP. Header values that are not
// IPs are ignored.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		for _, v := range []string{xff, r.Header.Get("X-Real-IP")} {
			if addr, err := netip.ParseAddr(StripPort(v)); err == nil {
				return addr.Unmap().String()
			}
		}
	}
	return StripPort(r.RemoteAddr)
}

// IPMatcher matches addresses against a list of IPs and CIDRs.
type IPMatcher struct {
	prefixes []netip.Prefix
}

// NewIPMatcher skips blank and unparsable entries. A bare IP is treated
// as a single-address prefix.
func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(s); err == nil {
			addr = addr.Unmap()
			m.prefixes = append(m.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return m
}

func (m *IPMatcher) IsEmpty() bool {
	return len(m.prefixes) == 0
}

// Allow reports whether ip falls in any configured prefix. IPv4-mapped
// IPv6 addresses match their IPv4 form; zones are ignored.
func (m *IPMatcher) Allow(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap().WithZone("")
	for _, p := range m.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
