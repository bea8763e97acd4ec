// Package netcheck performs a lightweight pre-flight connectivity check
// against the TMS endpoint, so VPN/proxy problems surface before a browser
// is launched and a human sits down to log in.
package netcheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Check issues a HEAD request to url. A 2xx or 3xx response counts as
// reachable (the TMS redirects unauthenticated requests to its SSO login).
func Check(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("User-Agent", "tmsbot/1.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return nil
}

// vpnIndicators are error fragments that usually mean the corporate
// VPN/proxy is down rather than the TMS itself.
var vpnIndicators = []string{
	"dns", "name resolution", "no such host",
	"connection refused", "timeout", "timed out", "deadline exceeded",
	"network unreachable", "no route to host",
	"tunnel", "proxy", "vpn",
}

// IsVPNProxyError reports whether err looks like a VPN/proxy problem.
func IsVPNProxyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, ind := range vpnIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}

// Hint formats a user-facing explanation for a failed check.
func Hint(url string, err error) string {
	var b strings.Builder
	b.WriteString("NETWORK CONNECTIVITY CHECK FAILED\n\n")
	fmt.Fprintf(&b, "Could not reach TMS server: %s\nError: %v\n\n", url, err)
	if IsVPNProxyError(err) {
		b.WriteString("This usually means the corporate VPN/proxy is not connected.\n")
		b.WriteString("Ensure it is on and authenticated, then verify the URL opens in a browser.\n")
	} else {
		b.WriteString("Check your internet connection, the TMS server status, and the URL.\n")
	}
	return b.String()
}
