package session

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// CheckReachable dials the endpoint's host:port without sending a request.
func CheckReachable(ctx context.Context, endpoint string) error {
	raw := strings.TrimSpace(endpoint)
	if raw == "" {
		return ErrNoEndpoint
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return fmt.Errorf("invalid url %q: %w", endpoint, err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := parsed.Hostname()
	if scheme == "" || host == "" {
		return fmt.Errorf("invalid url %q: scheme=%q host=%q", endpoint, parsed.Scheme, parsed.Host)
	}

	port := parsed.Port()
	if port == "" {
		switch scheme {
		case "http":
			port = "80"
		case "https":
			port = "443"
		default:
			return fmt.Errorf("unsupported url scheme %q (url=%q)", parsed.Scheme, endpoint)
		}
	}
	if _, err := strconv.Atoi(port); err != nil {
		return fmt.Errorf("invalid port %q (url=%q): %w", port, endpoint, err)
	}

	addr := net.JoinHostPort(host, port)
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot connect to %s: %w", addr, err)
	}
	_ = conn.Close()
	return nil
}
