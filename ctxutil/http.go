package ctxutil

import (
	"context"
	"net"
	"strings"
)

const (
	clientIPKey  = "client_ip"
	userAgentKey = "user_agent"
)

// SetClientInfo stores the caller's address and user agent on the context.
func SetClientInfo(ctx context.Context, ip, userAgent string) context.Context {
	ctx = SetValue(ctx, clientIPKey, ip)
	return SetValue(ctx, userAgentKey, userAgent)
}

// GetClientIP returns the caller's address, or "unknown".
func GetClientIP(ctx context.Context) string {
	if ip, ok := GetValue(ctx, clientIPKey).(string); ok && ip != "" {
		return ip
	}
	if c, ok := GetGinContext(ctx); ok {
		if ip := c.ClientIP(); ip != "" {
			return ip
		}
		if c.Request != nil {
			return hostOnly(c.Request.RemoteAddr)
		}
	}
	return "unknown"
}

// GetUserAgent returns the caller's user agent, if known.
func GetUserAgent(ctx context.Context) string {
	if ua, ok := GetValue(ctx, userAgentKey).(string); ok {
		return ua
	}
	if c, ok := GetGinContext(ctx); ok {
		return c.GetHeader("User-Agent")
	}
	return ""
}

func hostOnly(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.TrimSpace(addr)
}
