package clientip

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ErrInvalidProxy reports a TrustedProxies entry that is neither an address
// nor a CIDR prefix.
var ErrInvalidProxy = errors.New("clientip: invalid trusted proxy")

// Resolver determines the client address of a request.
//
// Forwarding headers are only read when the TCP peer is a trusted proxy, so
// a client talking to the service directly cannot choose its own address.
// In X-Forwarded-For the right-most address that is not itself a trusted
// proxy wins; when every hop is trusted the left-most valid one is used.
type Resolver struct {
	headers []string
	trusted []netip.Prefix
}

// NewResolver builds a Resolver from cfg. An entry of TrustedProxies without
// a prefix length is treated as a single address.
func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{headers: make([]string, 0, len(cfg.Headers))}
	for _, h := range cfg.Headers {
		if h = strings.TrimSpace(h); h != "" {
			r.headers = append(r.headers, http.CanonicalHeaderKey(h))
		}
	}
	for _, p := range cfg.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		prefix, err := parsePrefix(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, p)
		}
		r.trusted = append(r.trusted, prefix)
	}
	return r, nil
}

// IP returns the normalized client address, or an empty string when none
// of the candidates is a valid IP.
func (r *Resolver) IP(req *http.Request) string {
	peer, ok := peerAddr(req.RemoteAddr)
	if !ok {
		return ""
	}
	if !r.isTrusted(peer) {
		return peer.String()
	}

	for _, h := range r.headers {
		values := req.Header.Values(h)
		if len(values) == 0 {
			continue
		}
		if h == "X-Forwarded-For" {
			if addr, ok := r.fromForwardedFor(values); ok {
				return addr.String()
			}
			continue
		}
		if addr, ok := parseAddr(values[0]); ok {
			return addr.String()
		}
	}
	return peer.String()
}

func (r *Resolver) fromForwardedFor(values []string) (netip.Addr, bool) {
	hops := strings.Split(strings.Join(values, ","), ",")
	var last netip.Addr
	for i := len(hops) - 1; i >= 0; i-- {
		addr, ok := parseAddr(hops[i])
		if !ok {
			break
		}
		if !r.isTrusted(addr) {
			return addr, true
		}
		last = addr
	}
	return last, last.IsValid()
}

func (r *Resolver) isTrusted(addr netip.Addr) bool {
	for _, p := range r.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		return netip.ParsePrefix(s)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func peerAddr(remote string) (netip.Addr, bool) {
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	return parseAddr(remote)
}

// parseAddr accepts plain addresses and drops IPv6 zones. IPv4-mapped IPv6
// addresses are reported in their IPv4 form.
func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.WithZone("").Unmap(), true
}
