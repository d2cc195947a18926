// Package middleware provides HTTP middleware for the admin site.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// RequestIDHeader is the header carrying the request ID
const RequestIDHeader = "X-Request-ID"

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns default CORS configuration.
// AllowOrigins is empty, so cross-origin requests get no CORS headers until configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "X-Request-ID", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSConfigFromHTTP builds the CORS configuration from the HTTP config section
func CORSConfigFromHTTP(cfg config.HTTPConfig) CORSConfig {
	cors := DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// CORS returns a middleware that handles CORS with default configuration
func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// CORSWithConfig returns a CORS middleware with custom configuration
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowWildcard = true
			break
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Preflight always ends here with 204; headers only for allowed origins
		if c.Request.Method == http.MethodOptions {
			if allowWildcard {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				setCORSHeaders(c, cfg)
			} else if isOriginAllowed(origin, cfg.AllowOrigins) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				setCORSHeaders(c, cfg)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if len(cfg.AllowOrigins) == 0 || origin == "" {
			c.Next()
			return
		}

		var allowedOrigin string
		if allowWildcard {
			allowedOrigin = "*"
		} else if isOriginAllowed(origin, cfg.AllowOrigins) {
			allowedOrigin = origin
		}

		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			// Browsers reject credentials with a wildcard origin
			if cfg.AllowCredentials && allowedOrigin != "*" {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			setCORSHeaders(c, cfg)
		}

		c.Next()
	}
}

func isOriginAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}

// setCORSHeaders sets common CORS headers (methods, headers, expose, max-age)
func setCORSHeaders(c *gin.Context, cfg CORSConfig) {
	c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))

	if len(cfg.ExposeHeaders) > 0 {
		c.Writer.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}

	if cfg.MaxAge > 0 {
		c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > MaxRequestIDLength {
			requestID = generateRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, falling back to the header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	headerID := c.GetHeader(RequestIDHeader)
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(bytes)
}

// SecurityConfig holds configuration for security headers
type SecurityConfig struct {
	// HSTS settings
	HSTSEnabled           bool
	HSTSMaxAge            int // in seconds
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	// CSP settings
	CSPEnabled   bool
	CSPDirective string

	// Permissions-Policy settings
	PermissionsPolicyEnabled   bool
	PermissionsPolicyDirective string
}

// DefaultSecurityConfig returns secure default settings.
// HSTS is off because it requires HTTPS.
// The CSP allows product images from any https origin and forms posting back to the site.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:           false,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           false,

		CSPEnabled:   true,
		CSPDirective: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",

		PermissionsPolicyEnabled:   true,
		PermissionsPolicyDirective: "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
}

// Secure adds security headers to responses using default configuration
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds security headers to responses with custom configuration
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	var hstsValue string
	if cfg.HSTSEnabled {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hstsValue += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hstsValue += "; preload"
		}
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.CSPEnabled && cfg.CSPDirective != "" {
			c.Writer.Header().Set("Content-Security-Policy", cfg.CSPDirective)
		}
		if hstsValue != "" {
			c.Writer.Header().Set("Strict-Transport-Security", hstsValue)
		}
		if cfg.PermissionsPolicyEnabled && cfg.PermissionsPolicyDirective != "" {
			c.Writer.Header().Set("Permissions-Policy", cfg.PermissionsPolicyDirective)
		}

		c.Next()
	}
}

// WantsJSON reports whether the client prefers a JSON response over HTML.
// Requests without an explicit JSON preference are treated as browser requests.
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
