package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled     bool     // Whether Swagger endpoint is enabled
	RequireAuth bool     // Require an admin session to access Swagger
	AllowedIPs  []string // IP whitelist (CIDR notation supported, empty = allow all)
}

// SwaggerConfigFrom builds the protection settings from the swagger config section
func SwaggerConfigFrom(cfg config.SwaggerConfig, requireAuth bool) SwaggerConfig {
	return SwaggerConfig{
		Enabled:     cfg.Enabled,
		RequireAuth: requireAuth,
		AllowedIPs:  cfg.AllowedIPs,
	}
}

// SwaggerProtection returns a middleware that protects Swagger endpoints.
// A disabled endpoint answers 404. The IP whitelist is checked before the
// session guard, so a denied address never reaches the login redirect.
func SwaggerProtection(cfg SwaggerConfig, sessionGuard gin.HandlerFunc) gin.HandlerFunc {
	allowedIPs, allowedNets := parseAllowList(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "API documentation is not available", GetRequestID(c)))
			return
		}

		if len(cfg.AllowedIPs) > 0 && !isIPAllowed(getClientIP(c), allowedIPs, allowedNets) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Access to API documentation is restricted", GetRequestID(c)))
			return
		}

		if cfg.RequireAuth && sessionGuard != nil {
			sessionGuard(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

func parseAllowList(entries []string) ([]net.IP, []*net.IPNet) {
	var ips []net.IP
	var nets []*net.IPNet
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips, nets
}

// getClientIP extracts the client IP, honoring the engine's trusted proxies
func getClientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

// isIPAllowed checks if the given IP is in the allowed list
func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowedIP := range allowedIPs {
		if allowedIP.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
